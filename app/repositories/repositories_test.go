package repositories

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/models/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// getTestDB opens an isolated in-memory database per test so test
// cases cannot see each other's rows.
func getTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func makeProduct(name string, regions ...models.ProductRegion) *models.Product {
	id := uuid.New().String()
	for i := range regions {
		regions[i].ID = uuid.New().String()
		regions[i].ProductID = id
	}
	return &models.Product{
		ID:        id,
		Name:      name,
		Slug:      name + "-" + id[:6],
		Price:     decimal.NewFromInt(10),
		Currency:  "USD",
		Regions:   regions,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestGetByRegionFiltersUnavailable(t *testing.T) {
	db := getTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	sold := makeProduct("sold-in-uk", models.ProductRegion{Region: models.RegionUK, Available: true})
	hidden := makeProduct("hidden-in-uk", models.ProductRegion{Region: models.RegionUK, Available: false})
	nowhere := makeProduct("no-regions")
	for _, p := range []*models.Product{sold, hidden, nowhere} {
		require.NoError(t, repo.Create(ctx, p))
	}

	products, err := repo.GetByRegion(ctx, models.RegionUK)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, sold.ID, products[0].ID)

	// A product with zero region rows shows up nowhere.
	for _, region := range models.Regions {
		products, err := repo.GetByRegion(ctx, region)
		require.NoError(t, err)
		for _, p := range products {
			assert.NotEqual(t, nowhere.ID, p.ID)
		}
	}
}

func TestProductRegionUniquePerProduct(t *testing.T) {
	db := getTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := makeProduct("dup-region", models.ProductRegion{Region: models.RegionUS, Available: true})
	require.NoError(t, repo.Create(ctx, product))

	dup := models.ProductRegion{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Region:    models.RegionUS,
		Available: true,
	}
	assert.Error(t, db.Create(&dup).Error)
}

func TestSyncRegionsUpsertsAndRemoves(t *testing.T) {
	db := getTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := makeProduct("sync-target",
		models.ProductRegion{Region: models.RegionUK, Available: true},
		models.ProductRegion{Region: models.RegionUS, Available: true},
		models.ProductRegion{Region: models.RegionCanada, Available: true},
	)
	require.NoError(t, repo.Create(ctx, product))

	gbp := "GBP"
	err := repo.SyncRegions(ctx, product.ID,
		[]models.ProductRegion{
			// Existing row updated in place.
			{Region: models.RegionUK, Available: true, Price: decimal.NullDecimal{Decimal: decimal.NewFromInt(8), Valid: true}, Currency: &gbp},
			// New row inserted.
			{Region: models.RegionEurope, Available: true},
		},
		[]models.Region{models.RegionUS},
	)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	byRegion := make(map[models.Region]models.ProductRegion)
	for _, row := range got.Regions {
		byRegion[row.Region] = row
	}

	uk := byRegion[models.RegionUK]
	assert.True(t, uk.Price.Valid)
	assert.True(t, uk.Price.Decimal.Equal(decimal.NewFromInt(8)))
	require.NotNil(t, uk.Currency)
	assert.Equal(t, "GBP", *uk.Currency)

	_, hasEurope := byRegion[models.RegionEurope]
	assert.True(t, hasEurope)

	_, hasUS := byRegion[models.RegionUS]
	assert.False(t, hasUS, "explicitly removed region should be gone")

	// Canada was in neither list and must be untouched.
	canada, hasCanada := byRegion[models.RegionCanada]
	assert.True(t, hasCanada)
	assert.True(t, canada.Available)
}

func TestReplaceRegionsSwapsFullSet(t *testing.T) {
	db := getTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := makeProduct("replace-target",
		models.ProductRegion{Region: models.RegionUK, Available: true},
		models.ProductRegion{Region: models.RegionUS, Available: true},
	)
	require.NoError(t, repo.Create(ctx, product))

	err := repo.ReplaceRegions(ctx, product.ID, []models.ProductRegion{
		{Region: models.RegionAustralia, Available: true},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Regions, 1)
	assert.Equal(t, models.RegionAustralia, got.Regions[0].Region)
}

func TestGetByCategorySlugRegionFilters(t *testing.T) {
	db := getTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	productRepo := NewProductRepository(db)
	ctx := context.Background()

	iptv := &models.Category{ID: uuid.New().String(), Name: "IPTV", Slug: "iptv"}
	vpn := &models.Category{ID: uuid.New().String(), Name: "VPN", Slug: "vpn"}
	require.NoError(t, categoryRepo.Create(ctx, iptv))
	require.NoError(t, categoryRepo.Create(ctx, vpn))

	inCategory := makeProduct("iptv-uk", models.ProductRegion{Region: models.RegionUK, Available: true})
	inCategory.CategoryID = &iptv.ID
	otherCategory := makeProduct("vpn-uk", models.ProductRegion{Region: models.RegionUK, Available: true})
	otherCategory.CategoryID = &vpn.ID
	wrongRegion := makeProduct("iptv-us", models.ProductRegion{Region: models.RegionUS, Available: true})
	wrongRegion.CategoryID = &iptv.ID
	for _, p := range []*models.Product{inCategory, otherCategory, wrongRegion} {
		require.NoError(t, productRepo.Create(ctx, p))
	}

	products, err := productRepo.GetByCategorySlugRegion(ctx, "iptv", models.RegionUK)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, inCategory.ID, products[0].ID)

	products, err = productRepo.GetByCategorySlugRegion(ctx, "no-such-category", models.RegionUK)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	db := getTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	productRepo := NewProductRepository(db)
	ctx := context.Background()

	category := &models.Category{
		ID:   uuid.New().String(),
		Name: "IPTV",
		Slug: "iptv",
	}
	require.NoError(t, categoryRepo.Create(ctx, category))

	product := makeProduct("in-category")
	product.CategoryID = &category.ID
	require.NoError(t, productRepo.Create(ctx, product))

	err := categoryRepo.Delete(ctx, category.ID)
	assert.ErrorIs(t, err, ErrCategoryInUse)

	// Refused delete leaves the category in place.
	got, err := categoryRepo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	// Detaching the product unblocks the delete.
	product.CategoryID = nil
	require.NoError(t, productRepo.Update(ctx, product))
	require.NoError(t, categoryRepo.Delete(ctx, category.ID))
}

func makeMenu(t *testing.T, repo MenuRepositoryImpl) *models.Menu {
	t.Helper()
	menu := &models.Menu{ID: uuid.New().String(), Name: "Header", Location: "header"}
	require.NoError(t, repo.Create(context.Background(), menu))
	return menu
}

func makeItem(menuID, label string, parentID *string) *models.MenuItem {
	return &models.MenuItem{
		ID:       uuid.New().String(),
		MenuID:   menuID,
		ParentID: parentID,
		Label:    label,
		URL:      "/",
		Target:   models.TargetSelf,
	}
}

func TestCreateItemAssignsNextPosition(t *testing.T) {
	db := getTestDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()
	menu := makeMenu(t, repo)

	first := makeItem(menu.ID, "First", nil)
	require.NoError(t, repo.CreateItem(ctx, first, nil))
	assert.Equal(t, 0, first.Position)

	second := makeItem(menu.ID, "Second", nil)
	require.NoError(t, repo.CreateItem(ctx, second, nil))
	assert.Equal(t, 1, second.Position)

	// Children sequence independently of their parent's siblings.
	child := makeItem(menu.ID, "Child", &first.ID)
	require.NoError(t, repo.CreateItem(ctx, child, nil))
	assert.Equal(t, 0, child.Position)

	explicit := 7
	pinned := makeItem(menu.ID, "Pinned", nil)
	require.NoError(t, repo.CreateItem(ctx, pinned, &explicit))
	assert.Equal(t, 7, pinned.Position)
}

func TestCreateItemRejectsForeignParent(t *testing.T) {
	db := getTestDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()

	menuA := makeMenu(t, repo)
	menuB := &models.Menu{ID: uuid.New().String(), Name: "Footer", Location: "footer"}
	require.NoError(t, repo.Create(ctx, menuB))

	parent := makeItem(menuA.ID, "Parent", nil)
	require.NoError(t, repo.CreateItem(ctx, parent, nil))

	stray := makeItem(menuB.ID, "Stray", &parent.ID)
	err := repo.CreateItem(ctx, stray, nil)
	assert.ErrorIs(t, err, ErrParentOutsideMenu)
}

func TestUpdateItemOrdersIsAtomic(t *testing.T) {
	db := getTestDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()
	menu := makeMenu(t, repo)

	a := makeItem(menu.ID, "A", nil)
	b := makeItem(menu.ID, "B", nil)
	require.NoError(t, repo.CreateItem(ctx, a, nil))
	require.NoError(t, repo.CreateItem(ctx, b, nil))

	// One bad pair rolls back the whole batch.
	err := repo.UpdateItemOrders(ctx, menu.ID, []ItemOrder{
		{ID: a.ID, Order: 5},
		{ID: "missing-item", Order: 6},
	})
	assert.Error(t, err)

	got, err := repo.GetItem(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Position, "failed batch must not leak partial updates")

	// A clean batch applies in full.
	require.NoError(t, repo.UpdateItemOrders(ctx, menu.ID, []ItemOrder{
		{ID: a.ID, Order: 1},
		{ID: b.ID, Order: 0},
	}))
	got, err = repo.GetItem(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Position)
}

func TestUpdateItemOrdersRejectsDuplicatePositions(t *testing.T) {
	db := getTestDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()
	menu := makeMenu(t, repo)

	a := makeItem(menu.ID, "A", nil)
	b := makeItem(menu.ID, "B", nil)
	require.NoError(t, repo.CreateItem(ctx, a, nil))
	require.NoError(t, repo.CreateItem(ctx, b, nil))

	// Two root siblings landing on the same position roll back.
	err := repo.UpdateItemOrders(ctx, menu.ID, []ItemOrder{
		{ID: a.ID, Order: 3},
		{ID: b.ID, Order: 3},
	})
	assert.ErrorIs(t, err, ErrDuplicateSiblingOrder)

	gotA, err := repo.GetItem(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, gotA.Position)
	gotB, err := repo.GetItem(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotB.Position)

	// The same position on different parents is fine.
	child := makeItem(menu.ID, "Child", &a.ID)
	require.NoError(t, repo.CreateItem(ctx, child, nil))
	require.NoError(t, repo.UpdateItemOrders(ctx, menu.ID, []ItemOrder{
		{ID: b.ID, Order: 5},
		{ID: child.ID, Order: 5},
	}))
}

func TestUpdateItemRejectsDescendantParent(t *testing.T) {
	db := getTestDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()
	menu := makeMenu(t, repo)

	root := makeItem(menu.ID, "Root", nil)
	require.NoError(t, repo.CreateItem(ctx, root, nil))
	child := makeItem(menu.ID, "Child", &root.ID)
	require.NoError(t, repo.CreateItem(ctx, child, nil))
	grandchild := makeItem(menu.ID, "Grandchild", &child.ID)
	require.NoError(t, repo.CreateItem(ctx, grandchild, nil))

	// An item cannot become its own parent.
	root.ParentID = &root.ID
	assert.ErrorIs(t, repo.UpdateItem(ctx, root), ErrMenuItemCycle)

	// Nor hang off anything in its own subtree.
	root.ParentID = &grandchild.ID
	assert.ErrorIs(t, repo.UpdateItem(ctx, root), ErrMenuItemCycle)

	got, err := repo.GetItem(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID, "rejected reparent must leave the item at the root")

	// Moving a leaf under a non-ancestor still works.
	grandchild.ParentID = &root.ID
	require.NoError(t, repo.UpdateItem(ctx, grandchild))
}

func TestDeleteItemPromotesChildren(t *testing.T) {
	db := getTestDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()
	menu := makeMenu(t, repo)

	root := makeItem(menu.ID, "Root", nil)
	require.NoError(t, repo.CreateItem(ctx, root, nil))
	sibling := makeItem(menu.ID, "Sibling", nil)
	require.NoError(t, repo.CreateItem(ctx, sibling, nil))

	middle := makeItem(menu.ID, "Middle", &root.ID)
	require.NoError(t, repo.CreateItem(ctx, middle, nil))
	leafA := makeItem(menu.ID, "LeafA", &middle.ID)
	leafB := makeItem(menu.ID, "LeafB", &middle.ID)
	require.NoError(t, repo.CreateItem(ctx, leafA, nil))
	require.NoError(t, repo.CreateItem(ctx, leafB, nil))

	require.NoError(t, repo.DeleteItem(ctx, middle.ID))

	gone, err := repo.GetItem(ctx, middle.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Leaves now hang off the deleted node's parent, appended after
	// the existing children in their original order.
	gotA, err := repo.GetItem(ctx, leafA.ID)
	require.NoError(t, err)
	require.NotNil(t, gotA.ParentID)
	assert.Equal(t, root.ID, *gotA.ParentID)

	gotB, err := repo.GetItem(ctx, leafB.ID)
	require.NoError(t, err)
	require.NotNil(t, gotB.ParentID)
	assert.Equal(t, root.ID, *gotB.ParentID)
	assert.Greater(t, gotB.Position, gotA.Position)
}

func TestDeleteMenuCascades(t *testing.T) {
	db := getTestDB(t)
	repo := NewMenuRepository(db)
	ctx := context.Background()
	menu := makeMenu(t, repo)

	item := makeItem(menu.ID, "Orphan-to-be", nil)
	require.NoError(t, repo.CreateItem(ctx, item, nil))

	require.NoError(t, repo.Delete(ctx, menu.ID))

	gotMenu, err := repo.GetByID(ctx, menu.ID)
	require.NoError(t, err)
	assert.Nil(t, gotMenu)

	gotItem, err := repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, gotItem)
}

func TestOrderCreatePersistsSnapshotItems(t *testing.T) {
	db := getTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := &models.Order{
		ID:            uuid.New().String(),
		Code:          "SLP-TEST1234",
		Region:        models.RegionUK,
		CustomerName:  "Test Buyer",
		CustomerEmail: "buyer@example.com",
		PaymentMethod: models.RailPayPal,
		Status:        models.OrderStatusPending,
		Total:         decimal.NewFromInt(16),
		Currency:      "GBP",
		Items: []models.OrderItem{
			{
				ID:          uuid.New().String(),
				ProductID:   uuid.New().String(),
				ProductName: "IPTV Premium 12 Months",
				Qty:         2,
				Price:       decimal.NewFromInt(8),
				Currency:    "GBP",
			},
		},
	}
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.GetByCode(ctx, "SLP-TEST1234")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "IPTV Premium 12 Months", got.Items[0].ProductName)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(8)))

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, models.OrderStatusPaid))
	got, err = repo.GetByCode(ctx, "SLP-TEST1234")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
}
