package fakers

import (
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/shopspring/decimal"
)

// regionCurrencies maps each region to the currency its overrides are
// quoted in.
var regionCurrencies = map[models.Region]string{
	models.RegionUK:        "GBP",
	models.RegionUS:        "USD",
	models.RegionCanada:    "CAD",
	models.RegionEurope:    "EUR",
	models.RegionAustralia: "AUD",
}

func AdminUserFaker() *models.User {
	return &models.User{
		ID:        uuid.New().String(),
		FirstName: "Site",
		LastName:  "Admin",
		Email:     "admin@sellaap.test",
		Password:  helpers.HashPassword("admin12345"),
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func CategoryFaker(name string) *models.Category {
	return &models.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: faker.Sentence(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// ProductFaker builds one product with an available override row for
// every region. Roughly half the rows carry a local price in the
// region's currency; the rest fall back to the base USD price.
func ProductFaker(category *models.Category, name string, basePrice float64, featured bool) *models.Product {
	productID := uuid.New().String()

	regions := make([]models.ProductRegion, 0, len(models.Regions))
	for _, region := range models.Regions {
		row := models.ProductRegion{
			ID:        uuid.New().String(),
			ProductID: productID,
			Region:    region,
			Available: true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if rand.Intn(2) == 0 {
			currency := regionCurrencies[region]
			localPrice := decimal.NewFromFloat(basePrice * (0.8 + rand.Float64()*0.4)).Round(2)
			row.Price = decimal.NullDecimal{Decimal: localPrice, Valid: true}
			row.Currency = &currency
		}
		regions = append(regions, row)
	}

	return &models.Product{
		ID:          productID,
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Description: faker.Paragraph(),
		Price:       decimal.NewFromFloat(basePrice),
		Currency:    "USD",
		CategoryID:  &category.ID,
		Image:       "/assets/images/products/" + slug.Make(name) + ".jpg",
		Features: helpers.EncodeFeatures([]string{
			faker.Sentence(),
			faker.Sentence(),
			faker.Sentence(),
		}),
		IsFeatured: featured,
		Regions:    regions,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func PostFaker(title string) *models.Post {
	now := time.Now()
	return &models.Post{
		ID:          uuid.New().String(),
		Title:       title,
		Slug:        slug.Make(title),
		Excerpt:     faker.Sentence(),
		Content:     "<p>" + faker.Paragraph() + "</p>",
		Status:      models.StatusPublished,
		PublishedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// PrivacyPageFaker builds the per-region legal page resolved by the
// region privacy route.
func PrivacyPageFaker(region models.Region) *models.Page {
	title := "Privacy Policy (" + string(region) + ")"
	return &models.Page{
		ID:        uuid.New().String(),
		Title:     title,
		Slug:      "privacy-policy-" + string(region),
		Content:   "<p>" + faker.Paragraph() + "</p>",
		Status:    models.StatusPublished,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}
