package models

import (
	"sort"
	"time"
)

// Link target values for menu items.
const (
	TargetSelf  = "_self"
	TargetBlank = "_blank"
)

func ValidTarget(target string) bool {
	return target == TargetSelf || target == TargetBlank
}

// Menu owns an ordered forest of MenuItems. Location is a render slot
// such as "header" or "footer".
type Menu struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name      string `gorm:"size:100;not null"`
	Location  string `gorm:"size:50;index"`
	Items     []MenuItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuItem is one navigation entry. ParentID, when set, must reference
// another item of the same menu. Position sequences siblings sharing a
// parent and is unique among them.
type MenuItem struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	MenuID    string  `gorm:"size:36;not null;index"`
	ParentID  *string `gorm:"size:36;index"`
	Label     string  `gorm:"size:100;not null"`
	URL       string  `gorm:"size:500;not null"`
	Target    string  `gorm:"size:10;not null;default:'_self'"`
	Position  int     `gorm:"not null;default:0" json:"order"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuItemNode is a menu item with its resolved children, used to
// render nested dropdowns.
type MenuItemNode struct {
	MenuItem
	Children []MenuItemNode
}

// BuildMenuTree reconstructs the display forest from flat rows in a
// single grouping pass: group by ParentID, sort siblings by Position,
// recurse. The rows own all state; parent/child links are ids only, so
// no cycles can form through live pointers.
func BuildMenuTree(items []MenuItem) []MenuItemNode {
	byParent := make(map[string][]MenuItem)
	for _, it := range items {
		parent := ""
		if it.ParentID != nil {
			parent = *it.ParentID
		}
		byParent[parent] = append(byParent[parent], it)
	}
	for _, siblings := range byParent {
		sort.SliceStable(siblings, func(i, j int) bool {
			return siblings[i].Position < siblings[j].Position
		})
	}

	var build func(parent string) []MenuItemNode
	build = func(parent string) []MenuItemNode {
		rows := byParent[parent]
		if len(rows) == 0 {
			return nil
		}
		nodes := make([]MenuItemNode, 0, len(rows))
		for _, row := range rows {
			nodes = append(nodes, MenuItemNode{
				MenuItem: row,
				Children: build(row.ID),
			})
		}
		return nodes
	}
	return build("")
}
