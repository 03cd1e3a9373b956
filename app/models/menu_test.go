package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildMenuTreeNestsAndOrders(t *testing.T) {
	shopID := "shop"
	subsID := "subs"
	items := []MenuItem{
		{ID: "blog", Label: "Blog", Position: 2},
		{ID: shopID, Label: "Shop", Position: 1},
		{ID: "home", Label: "Home", Position: 0},
		{ID: subsID, Label: "Subscriptions", ParentID: &shopID, Position: 1},
		{ID: "devices", Label: "Devices", ParentID: &shopID, Position: 0},
		{ID: "vpn", Label: "VPN", ParentID: &subsID, Position: 1},
		{ID: "iptv", Label: "IPTV", ParentID: &subsID, Position: 0},
	}

	tree := BuildMenuTree(items)

	assert.Len(t, tree, 3)
	assert.Equal(t, "Home", tree[0].Label)
	assert.Equal(t, "Shop", tree[1].Label)
	assert.Equal(t, "Blog", tree[2].Label)

	shop := tree[1]
	assert.Len(t, shop.Children, 2)
	assert.Equal(t, "Devices", shop.Children[0].Label)
	assert.Equal(t, "Subscriptions", shop.Children[1].Label)

	subs := shop.Children[1]
	assert.Len(t, subs.Children, 2)
	assert.Equal(t, "IPTV", subs.Children[0].Label)
	assert.Equal(t, "VPN", subs.Children[1].Label)
}

func TestBuildMenuTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildMenuTree(nil))
}

func TestBuildMenuTreeOrphanedParentIsDropped(t *testing.T) {
	gone := "deleted-elsewhere"
	items := []MenuItem{
		{ID: "a", Label: "A", Position: 0},
		{ID: "b", Label: "B", ParentID: &gone, Position: 0},
	}

	tree := BuildMenuTree(items)
	assert.Len(t, tree, 1)
	assert.Equal(t, "A", tree[0].Label)
}
