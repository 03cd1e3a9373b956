package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/models/migrations"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/utils/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

type testEnv struct {
	db       *gorm.DB
	products *ProductService
	content  *ContentService
	menus    *MenuService
	checkout *CheckoutService
	settings *SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	c := cache.New()
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	postRepo := repositories.NewPostRepository(db)
	pageRepo := repositories.NewPageRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	return &testEnv{
		db:       db,
		products: NewProductService(productRepo, categoryRepo, c),
		content:  NewContentService(postRepo, pageRepo, productRepo, c),
		menus:    NewMenuService(menuRepo, c),
		checkout: NewCheckoutService(productRepo, orderRepo, settingsRepo),
		settings: NewSettingsService(settingsRepo, c),
	}
}

func adminCtx() context.Context {
	user := &models.User{ID: uuid.New().String(), Role: models.RoleAdmin}
	return context.WithValue(context.Background(), helpers.ContextKeyUser, user)
}

func customerCtx() context.Context {
	user := &models.User{ID: uuid.New().String(), Role: models.RoleCustomer}
	return context.WithValue(context.Background(), helpers.ContextKeyUser, user)
}

func TestMutationsRejectNonAdmins(t *testing.T) {
	env := newTestEnv(t)

	input := ProductInput{
		Name:     "Firestick 4K",
		Price:    "10",
		Currency: "USD",
		Regions:  []RegionInput{{Region: "uk", Available: true}},
	}

	for _, ctx := range []context.Context{customerCtx(), context.Background()} {
		result := env.products.Create(ctx, input)
		assert.False(t, result.Success)
		assert.Equal(t, "Unauthorized", result.Err)
	}

	// The store must be untouched after rejected mutations.
	var count int64
	require.NoError(t, env.db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProductRegionalPricingRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx()

	created := env.products.Create(ctx, ProductInput{
		Name:     "Firestick 4K Max",
		Price:    "10",
		Currency: "USD",
		Regions: []RegionInput{
			{Region: "uk", Available: true},
		},
	})
	require.True(t, created.Success, created.Err)
	product := created.Data.(*models.Product)

	// No override row: the base price and currency apply.
	got, err := env.products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	price, currency, ok := got.ResolveRegion(models.RegionUK)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "USD", currency)

	// Override the uk row with a local price.
	updated := env.products.Update(ctx, product.ID, ProductInput{
		Name:     "Firestick 4K Max",
		Price:    "10",
		Currency: "USD",
		Regions: []RegionInput{
			{Region: "uk", Available: true, Price: "8", Currency: "GBP"},
		},
	})
	require.True(t, updated.Success, updated.Err)

	got, err = env.products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	price, currency, ok = got.ResolveRegion(models.RegionUK)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, "GBP", currency)

	// us never got a row, so the product is not sold there.
	_, _, ok = got.ResolveRegion(models.RegionUS)
	assert.False(t, ok)

	// Removing the uk row makes the product unavailable there too.
	removed := env.products.Update(ctx, product.ID, ProductInput{
		Name:          "Firestick 4K Max",
		Price:         "10",
		Currency:      "USD",
		RemoveRegions: []string{"uk"},
	})
	require.True(t, removed.Success, removed.Err)

	got, err = env.products.GetByID(ctx, product.ID)
	require.NoError(t, err)
	_, _, ok = got.ResolveRegion(models.RegionUK)
	assert.False(t, ok)
}

func TestProductCreateRejectsBadRegionInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx()

	result := env.products.Create(ctx, ProductInput{
		Name:     "Bad Regions",
		Price:    "10",
		Currency: "USD",
		Regions:  []RegionInput{{Region: "atlantis", Available: true}},
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "unknown region")

	result = env.products.Create(ctx, ProductInput{
		Name:     "Dup Regions",
		Price:    "10",
		Currency: "USD",
		Regions: []RegionInput{
			{Region: "uk", Available: true},
			{Region: "uk", Available: false},
		},
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "duplicate region")
}

func TestPostSaveWarnsOnBrokenLinks(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx()

	require.True(t, env.content.CreatePage(ctx, PageInput{
		Title:   "About Us",
		Content: "<p>hello</p>",
		Status:  models.StatusPublished,
	}).Success)

	result := env.content.CreatePost(ctx, PostInput{
		Title:   "Linked Post",
		Content: `<p><a href="/pages/about-us">good</a> and <a href="/pages/no-such-page">bad</a></p>`,
		Status:  models.StatusPublished,
	})
	require.True(t, result.Success, result.Err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "broken internal link: /pages/no-such-page", result.Warnings[0])

	// A body with only resolvable links saves clean.
	clean := env.content.CreatePost(ctx, PostInput{
		Title:   "Clean Post",
		Content: `<p><a href="/pages/about-us">good</a> <a href="https://example.com/x">external</a></p>`,
		Status:  models.StatusDraft,
	})
	require.True(t, clean.Success, clean.Err)
	assert.Empty(t, clean.Warnings)
}

func TestPostUpdateReplacesTagSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx()
	postRepo := repositories.NewPostRepository(env.db)

	created := env.content.CreatePost(ctx, PostInput{
		Title:    "Streaming Guide",
		Content:  "<p>guide</p>",
		Status:   models.StatusPublished,
		TagNames: []string{"iptv"},
	})
	require.True(t, created.Success, created.Err)
	post := created.Data.(*models.Post)

	updated := env.content.UpdatePost(ctx, post.ID, PostInput{
		Title:    "Streaming Guide",
		Content:  "<p>guide</p>",
		Status:   models.StatusPublished,
		TagNames: []string{"iptv", "vpn"},
	})
	require.True(t, updated.Success, updated.Err)

	got, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 2)
	names := []string{got.Tags[0].Name, got.Tags[1].Name}
	assert.ElementsMatch(t, []string{"iptv", "vpn"}, names)

	// Dropping a tag from the submitted set detaches it.
	trimmed := env.content.UpdatePost(ctx, post.ID, PostInput{
		Title:    "Streaming Guide",
		Content:  "<p>guide</p>",
		Status:   models.StatusPublished,
		TagNames: []string{"vpn"},
	})
	require.True(t, trimmed.Success, trimmed.Err)

	got, err = postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "vpn", got.Tags[0].Name)
}

func TestPostsShareTagRowsByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx()
	postRepo := repositories.NewPostRepository(env.db)

	first := env.content.CreatePost(ctx, PostInput{
		Title:    "First Announcement",
		Content:  "<p>one</p>",
		Status:   models.StatusPublished,
		TagNames: []string{"news"},
	})
	require.True(t, first.Success, first.Err)

	second := env.content.CreatePost(ctx, PostInput{
		Title:    "Second Announcement",
		Content:  "<p>two</p>",
		Status:   models.StatusPublished,
		TagNames: []string{"news"},
	})
	require.True(t, second.Success, second.Err)

	// Both posts hang off one Tag row.
	var tagCount int64
	require.NoError(t, env.db.Model(&models.Tag{}).Where("slug = ?", "news").Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount)

	for _, res := range []Result{first, second} {
		post := res.Data.(*models.Post)
		got, err := postRepo.GetByID(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, got.Tags, 1)
		assert.Equal(t, "news", got.Tags[0].Name)
	}
}

func TestMenuReorderRequiresPairs(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx()

	created := env.menus.CreateMenu(ctx, MenuInput{Name: "Header", Location: "header"})
	require.True(t, created.Success, created.Err)
	menu := created.Data.(*models.Menu)

	result := env.menus.ReorderItems(ctx, menu.ID, nil)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Err)
}

func TestMenuItemRejectsInvalidTarget(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx()

	created := env.menus.CreateMenu(ctx, MenuInput{Name: "Header", Location: "header"})
	require.True(t, created.Success, created.Err)
	menu := created.Data.(*models.Menu)

	result := env.menus.CreateItem(ctx, MenuItemInput{
		MenuID: menu.ID,
		Label:  "Home",
		URL:    "/",
		Target: "_parent",
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "invalid link target")
}

func seedCheckoutCatalog(t *testing.T, env *testEnv) *models.Product {
	t.Helper()
	ctx := adminCtx()

	require.True(t, env.settings.UpdatePayment(ctx, PaymentSettingsInput{
		PayPalEnabled:     true,
		PayPalDestination: "payments@sellaap.test",
	}).Success)

	created := env.products.Create(ctx, ProductInput{
		Name:     "IPTV Premium",
		Price:    "10",
		Currency: "USD",
		Regions: []RegionInput{
			{Region: "uk", Available: true, Price: "8", Currency: "GBP"},
		},
	})
	require.True(t, created.Success, created.Err)
	return created.Data.(*models.Product)
}

func TestPlaceOrderSnapshotsRegionPrice(t *testing.T) {
	env := newTestEnv(t)
	product := seedCheckoutCatalog(t, env)

	// Checkout is a public action; no admin session needed.
	result := env.checkout.PlaceOrder(context.Background(), CheckoutInput{
		Region:        "uk",
		CustomerName:  "Test Buyer",
		CustomerEmail: "buyer@example.com",
		PaymentMethod: models.RailPayPal,
		Cart:          map[string]int{product.ID: 2},
	})
	require.True(t, result.Success, result.Err)

	order := result.Data.(*models.Order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "GBP", order.Currency)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(16)))
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(8)))
	assert.Contains(t, order.Code, "SLP-")
}

func TestPlaceOrderRejectsDisabledRail(t *testing.T) {
	env := newTestEnv(t)
	product := seedCheckoutCatalog(t, env)

	result := env.checkout.PlaceOrder(context.Background(), CheckoutInput{
		Region:        "uk",
		CustomerName:  "Test Buyer",
		CustomerEmail: "buyer@example.com",
		PaymentMethod: models.RailBTC,
		Cart:          map[string]int{product.ID: 1},
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "payment method not available")
}

func TestPlaceOrderRejectsUnavailableRegion(t *testing.T) {
	env := newTestEnv(t)
	product := seedCheckoutCatalog(t, env)

	// The product has no us row, so a us buyer cannot order it.
	result := env.checkout.PlaceOrder(context.Background(), CheckoutInput{
		Region:        "us",
		CustomerName:  "Test Buyer",
		CustomerEmail: "buyer@example.com",
		PaymentMethod: models.RailPayPal,
		Cart:          map[string]int{product.ID: 1},
	})
	assert.False(t, result.Success)
	assert.Contains(t, result.Err, "not available in your region")
}

func TestOrderStatusTransitionsAreAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	product := seedCheckoutCatalog(t, env)

	placed := env.checkout.PlaceOrder(context.Background(), CheckoutInput{
		Region:        "uk",
		CustomerName:  "Test Buyer",
		CustomerEmail: "buyer@example.com",
		PaymentMethod: models.RailPayPal,
		Cart:          map[string]int{product.ID: 1},
	})
	require.True(t, placed.Success, placed.Err)
	order := placed.Data.(*models.Order)

	denied := env.checkout.MarkPaid(customerCtx(), order.ID)
	assert.Equal(t, "Unauthorized", denied.Err)

	confirmed := env.checkout.MarkPaid(adminCtx(), order.ID)
	require.True(t, confirmed.Success, confirmed.Err)

	got, err := env.checkout.OrderByCode(context.Background(), order.Code)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, got.Status)
}

func TestCategoryDeleteSurfacesIntegrityMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := adminCtx()
	categoryRepo := repositories.NewCategoryRepository(env.db)
	categorySvc := NewCategoryService(categoryRepo, cache.New())

	created := categorySvc.Create(ctx, CategoryInput{Name: "VPN Services"})
	require.True(t, created.Success, created.Err)
	category := created.Data.(*models.Category)

	product := env.products.Create(ctx, ProductInput{
		Name:       "VPN Basic",
		Price:      "10",
		Currency:   "USD",
		CategoryID: category.ID,
		Regions:    []RegionInput{{Region: "us", Available: true}},
	})
	require.True(t, product.Success, product.Err)

	result := categorySvc.Delete(ctx, category.ID)
	assert.False(t, result.Success)
	assert.Equal(t, repositories.ErrCategoryInUse.Error(), result.Err)
}
