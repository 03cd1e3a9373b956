package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/utils/cache"
	"github.com/shopspring/decimal"
)

// RegionInput is one regional override row of a product form. Price
// and Currency left empty mean "fall back to the base values".
type RegionInput struct {
	Region    string `validate:"required"`
	Available bool
	Price     string
	Currency  string `validate:"omitempty,len=3"`
}

type ProductInput struct {
	Name          string `validate:"required,min=2,max=255"`
	Description   string
	Price         string `validate:"required"`
	Currency      string `validate:"required,len=3"`
	CategoryID    string
	Image         string
	FallbackImage string
	Features      []string
	IsFeatured    bool

	// Regions are upserted by (product, region) key. On update,
	// RemoveRegions names the rows to delete; regions in neither list
	// stay untouched.
	Regions       []RegionInput
	RemoveRegions []string
}

type ProductService struct {
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	cache        *cache.Cache
	validate     *validator.Validate
}

func NewProductService(
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	c *cache.Cache,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        c,
		validate:     validator.New(),
	}
}

// ListByRegion is the cached storefront read: only products with an
// available row for the region come back.
func (s *ProductService) ListByRegion(ctx context.Context, region models.Region) ([]models.Product, error) {
	key := "products:region:" + string(region)
	tags := []string{cache.TagProducts, cache.PathTag("/" + string(region) + "/products")}
	return cache.Memoize(s.cache, key, cache.TTLProducts, tags, func() ([]models.Product, error) {
		return s.productRepo.GetByRegion(ctx, region)
	})
}

// ListByCategoryRegion narrows the regional listing to one category
// slug, filtered in the store rather than over the full catalog.
func (s *ProductService) ListByCategoryRegion(ctx context.Context, categorySlug string, region models.Region) ([]models.Product, error) {
	key := fmt.Sprintf("products:region:%s:category:%s", region, categorySlug)
	tags := []string{cache.TagProducts, cache.PathTag("/" + string(region) + "/products")}
	return cache.Memoize(s.cache, key, cache.TTLProducts, tags, func() ([]models.Product, error) {
		return s.productRepo.GetByCategorySlugRegion(ctx, categorySlug, region)
	})
}

func (s *ProductService) FeaturedByRegion(ctx context.Context, region models.Region, limit int) ([]models.Product, error) {
	key := fmt.Sprintf("products:featured:%s:%d", region, limit)
	tags := []string{cache.TagProducts, cache.PathTag("/" + string(region))}
	return cache.Memoize(s.cache, key, cache.TTLProducts, tags, func() ([]models.Product, error) {
		return s.productRepo.GetFeaturedByRegion(ctx, region, limit)
	})
}

// GetByID is an uncached read used by the cart and the admin forms.
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	key := "products:slug:" + slug
	tags := []string{cache.TagProducts, cache.PathTag("/products/" + slug)}
	return cache.Memoize(s.cache, key, cache.TTLProducts, tags, func() (*models.Product, error) {
		return s.productRepo.GetBySlug(ctx, slug)
	})
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return fail("invalid price format")
	}
	regionRows, msg := buildRegionRows(input.Regions)
	if msg != "" {
		return fail(msg)
	}
	if msg := s.checkCategory(ctx, input.CategoryID); msg != "" {
		return fail(msg)
	}

	product := &models.Product{
		ID:            uuid.New().String(),
		Name:          input.Name,
		Slug:          helpers.GenerateSlug(input.Name),
		Description:   input.Description,
		Price:         price,
		Currency:      input.Currency,
		Image:         input.Image,
		FallbackImage: input.FallbackImage,
		Features:      helpers.EncodeFeatures(input.Features),
		IsFeatured:    input.IsFeatured,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if input.CategoryID != "" {
		product.CategoryID = &input.CategoryID
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return fail(failureMessage("create product", err))
	}
	if err := s.productRepo.ReplaceRegions(ctx, product.ID, regionRows); err != nil {
		return fail(failureMessage("save product regions", err))
	}

	s.invalidateProduct(product.Slug)
	return ok(product)
}

func (s *ProductService) Update(ctx context.Context, id string, input ProductInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}
	if err := s.validate.Struct(&input); err != nil {
		return fail(validationMessage(err))
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fail(failureMessage("load product", err))
	}
	if product == nil {
		return fail("product not found")
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return fail("invalid price format")
	}
	regionRows, msg := buildRegionRows(input.Regions)
	if msg != "" {
		return fail(msg)
	}
	if msg := s.checkCategory(ctx, input.CategoryID); msg != "" {
		return fail(msg)
	}
	removals := make([]models.Region, 0, len(input.RemoveRegions))
	for _, code := range input.RemoveRegions {
		if !models.ValidRegion(code) {
			return fail("unknown region: " + code)
		}
		removals = append(removals, models.Region(code))
	}

	oldSlug := product.Slug
	product.Name = input.Name
	product.Slug = helpers.GenerateSlug(input.Name)
	product.Description = input.Description
	product.Price = price
	product.Currency = input.Currency
	product.Image = input.Image
	product.FallbackImage = input.FallbackImage
	product.Features = helpers.EncodeFeatures(input.Features)
	product.IsFeatured = input.IsFeatured
	product.CategoryID = nil
	if input.CategoryID != "" {
		product.CategoryID = &input.CategoryID
	}
	product.Regions = nil
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return fail(failureMessage("update product", err))
	}
	if err := s.productRepo.SyncRegions(ctx, product.ID, regionRows, removals); err != nil {
		return fail(failureMessage("save product regions", err))
	}

	s.invalidateProduct(oldSlug)
	if product.Slug != oldSlug {
		s.invalidateProduct(product.Slug)
	}
	return ok(product)
}

func (s *ProductService) Delete(ctx context.Context, id string) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fail(failureMessage("load product", err))
	}
	if product == nil {
		return fail("product not found")
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fail(failureMessage("delete product", err))
	}

	s.invalidateProduct(product.Slug)
	return ok(nil)
}

func (s *ProductService) checkCategory(ctx context.Context, categoryID string) string {
	if categoryID == "" {
		return ""
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return failureMessage("load category", err)
	}
	if category == nil {
		return "category not found"
	}
	return ""
}

// invalidateProduct drops the product caches and revalidates the
// public routes that render the product. Fire-and-forget: the store
// is the source of truth, a missed invalidation self-heals at TTL.
func (s *ProductService) invalidateProduct(slug string) {
	s.cache.InvalidateTags(cache.TagProducts)
	s.cache.InvalidatePath("/products/" + slug)
	for _, region := range models.Regions {
		s.cache.InvalidatePath("/" + string(region) + "/products")
		s.cache.InvalidatePath("/" + string(region))
	}
}

func buildRegionRows(inputs []RegionInput) ([]models.ProductRegion, string) {
	rows := make([]models.ProductRegion, 0, len(inputs))
	seen := make(map[models.Region]bool)
	for _, in := range inputs {
		if !models.ValidRegion(in.Region) {
			return nil, "unknown region: " + in.Region
		}
		region := models.Region(in.Region)
		if seen[region] {
			return nil, "duplicate region: " + in.Region
		}
		seen[region] = true

		row := models.ProductRegion{
			Region:    region,
			Available: in.Available,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if in.Price != "" {
			price, err := decimal.NewFromString(in.Price)
			if err != nil {
				return nil, "invalid price format for region " + in.Region
			}
			row.Price = decimal.NullDecimal{Decimal: price, Valid: true}
		}
		if in.Currency != "" {
			currency := in.Currency
			row.Currency = &currency
		}
		rows = append(rows, row)
	}
	return rows, ""
}

func validationMessage(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, msg := range helpers.FormatValidationErrors(errs) {
			return msg
		}
	}
	return "validation failed"
}
