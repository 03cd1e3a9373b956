package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

var (
	// ErrParentOutsideMenu is returned when a menu item references a
	// parent belonging to a different menu.
	ErrParentOutsideMenu = errors.New("parent item belongs to a different menu")

	// ErrMenuItemCycle is returned when a reparent would place an item
	// under its own descendant.
	ErrMenuItemCycle = errors.New("menu item cannot be moved under its own descendant")

	// ErrDuplicateSiblingOrder is returned when a reorder batch would
	// leave two siblings sharing a position.
	ErrDuplicateSiblingOrder = errors.New("sibling menu items must have distinct order values")
)

// ItemOrder is one (id, order) pair of a batch reorder submitted after
// a drag-and-drop.
type ItemOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

type MenuRepositoryImpl interface {
	Create(ctx context.Context, menu *models.Menu) error
	Update(ctx context.Context, menu *models.Menu) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Menu, error)
	GetByLocation(ctx context.Context, location string) (*models.Menu, error)
	GetAll(ctx context.Context) ([]models.Menu, error)

	CreateItem(ctx context.Context, item *models.MenuItem, explicitOrder *int) error
	UpdateItem(ctx context.Context, item *models.MenuItem) error
	UpdateItemOrders(ctx context.Context, menuID string, orders []ItemOrder) error
	DeleteItem(ctx context.Context, itemID string) error
	GetItem(ctx context.Context, itemID string) (*models.MenuItem, error)
}

type menuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepositoryImpl {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Create(menu).Error
}

func (r *menuRepository) Update(ctx context.Context, menu *models.Menu) error {
	return r.db.WithContext(ctx).Save(menu).Error
}

// Delete cascades: a menu owns its items.
func (r *menuRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Menu{}, "id = ?", id).Error
	})
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&menu, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) GetByLocation(ctx context.Context, location string) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&menu, "location = ?", location).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &menu, nil
}

func (r *menuRepository) GetAll(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Find(&menus).Error
	return menus, err
}

// CreateItem inserts a new item. A nil explicitOrder assigns
// max(sibling position)+1, or 0 when the item has no siblings; the
// read and the insert share a transaction so concurrent creates under
// the same parent serialize on the row range.
func (r *menuRepository) CreateItem(ctx context.Context, item *models.MenuItem, explicitOrder *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if item.ParentID != nil {
			var parent models.MenuItem
			if err := tx.First(&parent, "id = ?", *item.ParentID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("parent item %s not found", *item.ParentID)
				}
				return err
			}
			if parent.MenuID != item.MenuID {
				return ErrParentOutsideMenu
			}
		}

		if explicitOrder != nil {
			item.Position = *explicitOrder
		} else {
			maxPos, err := maxSiblingPosition(tx, item.MenuID, item.ParentID)
			if err != nil {
				return err
			}
			item.Position = maxPos + 1
		}

		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		return tx.Create(item).Error
	})
}

func (r *menuRepository) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if item.ParentID != nil {
			var parent models.MenuItem
			if err := tx.First(&parent, "id = ?", *item.ParentID).Error; err != nil {
				return err
			}
			if parent.MenuID != item.MenuID {
				return ErrParentOutsideMenu
			}
			if err := ensureNotDescendant(tx, item.ID, parent); err != nil {
				return err
			}
		}
		return tx.Save(item).Error
	})
}

// ensureNotDescendant walks the ancestor chain from the proposed
// parent up to the root. Finding itemID on the way means the reparent
// would cut the subtree off from the roots, which the tree rebuild
// would then silently drop.
func ensureNotDescendant(tx *gorm.DB, itemID string, parent models.MenuItem) error {
	for {
		if parent.ID == itemID {
			return ErrMenuItemCycle
		}
		if parent.ParentID == nil {
			return nil
		}
		var next models.MenuItem
		if err := tx.First(&next, "id = ?", *parent.ParentID).Error; err != nil {
			return err
		}
		parent = next
	}
}

// UpdateItemOrders applies a batch of (id, order) pairs atomically. A
// pair referencing an item outside the menu, or a batch that would
// leave two siblings on the same position, rolls back the whole batch
// and leaves the prior ordering untouched.
func (r *menuRepository) UpdateItemOrders(ctx context.Context, menuID string, orders []ItemOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, pair := range orders {
			res := tx.Model(&models.MenuItem{}).
				Where("id = ? AND menu_id = ?", pair.ID, menuID).
				Update("position", pair.Order)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("menu item %s not found in menu %s", pair.ID, menuID)
			}
		}

		var clashes []struct{ N int64 }
		err := tx.Model(&models.MenuItem{}).
			Select("COUNT(*) AS n").
			Where("menu_id = ?", menuID).
			Group("parent_id, position").
			Having("COUNT(*) > 1").
			Scan(&clashes).Error
		if err != nil {
			return err
		}
		if len(clashes) > 0 {
			return ErrDuplicateSiblingOrder
		}
		return nil
	})
}

// DeleteItem removes one item and promotes its children to the deleted
// node's parent, appending them after the existing siblings so the
// order stays deterministic.
func (r *menuRepository) DeleteItem(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, "id = ?", itemID).Error; err != nil {
			return err
		}

		var children []models.MenuItem
		if err := tx.Where("parent_id = ?", itemID).Order("position ASC").Find(&children).Error; err != nil {
			return err
		}
		if len(children) > 0 {
			maxPos, err := maxSiblingPosition(tx, item.MenuID, item.ParentID)
			if err != nil {
				return err
			}
			for i := range children {
				updates := map[string]interface{}{
					"parent_id": item.ParentID,
					"position":  maxPos + 1 + i,
				}
				if err := tx.Model(&models.MenuItem{}).
					Where("id = ?", children[i].ID).
					Updates(updates).Error; err != nil {
					return err
				}
			}
		}

		return tx.Delete(&models.MenuItem{}, "id = ?", itemID).Error
	})
}

func (r *menuRepository) GetItem(ctx context.Context, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func maxSiblingPosition(tx *gorm.DB, menuID string, parentID *string) (int, error) {
	query := tx.Model(&models.MenuItem{}).Where("menu_id = ?", menuID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}
	var maxPos *int
	if err := query.Select("MAX(position)").Scan(&maxPos).Error; err != nil {
		return 0, err
	}
	if maxPos == nil {
		return -1, nil
	}
	return *maxPos, nil
}
