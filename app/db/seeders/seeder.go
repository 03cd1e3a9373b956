package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/db/fakers"
	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

// DBSeed loads the demo storefront: an admin account, the catalog with
// regional rows, a three-level header menu, legal pages, a sample post
// and the settings singletons. Safe to re-run; existing rows are kept.
func DBSeed(db *gorm.DB) error {
	admin := fakers.AdminUserFaker()
	if err := db.FirstOrCreate(admin, "email = ?", admin.Email).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin user %s", admin.Email)

	catalog := map[string][]struct {
		name     string
		price    float64
		featured bool
	}{
		"Streaming Devices": {
			{"Firestick 4K Max Loaded", 89.99, true},
			{"Firestick Lite Preconfigured", 49.99, false},
		},
		"IPTV Subscriptions": {
			{"IPTV Premium 12 Months", 119.99, true},
			{"IPTV Standard 6 Months", 69.99, false},
			{"IPTV Trial 1 Month", 14.99, false},
		},
		"VPN Services": {
			{"VPN Unlimited 12 Months", 59.99, true},
			{"VPN Basic 3 Months", 19.99, false},
		},
	}

	for categoryName, products := range catalog {
		category := fakers.CategoryFaker(categoryName)
		if err := db.FirstOrCreate(category, "name = ?", category.Name).Error; err != nil {
			return err
		}
		for _, p := range products {
			var count int64
			if err := db.Model(&models.Product{}).Where("name = ?", p.name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := db.Create(fakers.ProductFaker(category, p.name, p.price, p.featured)).Error; err != nil {
				return err
			}
		}
	}

	if err := seedHeaderMenu(db); err != nil {
		return err
	}

	for _, region := range models.Regions {
		page := fakers.PrivacyPageFaker(region)
		if err := db.FirstOrCreate(page, "slug = ?", page.Slug).Error; err != nil {
			return err
		}
	}

	post := fakers.PostFaker("How to Set Up Your Firestick in 5 Minutes")
	if err := db.FirstOrCreate(post, "slug = ?", post.Slug).Error; err != nil {
		return err
	}

	payment := &models.PaymentSettings{
		ID:                uuid.New().String(),
		PayPalEnabled:     true,
		PayPalDestination: "payments@sellaap.test",
		BTCEnabled:        true,
		BTCDestination:    "bc1qexampledemoaddressxxxxxxxxxxxxxxxx",
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := db.FirstOrCreate(payment, "1 = 1").Error; err != nil {
		return err
	}

	seo := &models.SeoSettings{
		ID:              uuid.New().String(),
		SiteTitle:       "Sellaap",
		SiteDescription: "Streaming devices, IPTV and VPN subscriptions with regional pricing.",
		Keywords:        "firestick, iptv, vpn",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := db.FirstOrCreate(seo, "1 = 1").Error; err != nil {
		return err
	}

	return nil
}

// seedHeaderMenu builds a three-level navigation tree so the dropdown
// rendering has real depth to work with.
func seedHeaderMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Menu{}).Where("location = ?", "header").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	menu := &models.Menu{
		ID:        uuid.New().String(),
		Name:      "Header",
		Location:  "header",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(menu).Error; err != nil {
		return err
	}

	newItem := func(label, url string, parentID *string, position int) *models.MenuItem {
		return &models.MenuItem{
			ID:        uuid.New().String(),
			MenuID:    menu.ID,
			ParentID:  parentID,
			Label:     label,
			URL:       url,
			Target:    models.TargetSelf,
			Position:  position,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}

	home := newItem("Home", "/", nil, 0)
	shop := newItem("Shop", "/us/products", nil, 1)
	blog := newItem("Blog", "/blog", nil, 2)
	for _, item := range []*models.MenuItem{home, shop, blog} {
		if err := db.Create(item).Error; err != nil {
			return err
		}
	}

	devices := newItem("Streaming Devices", "/us/products", &shop.ID, 0)
	subs := newItem("Subscriptions", "/us/products", &shop.ID, 1)
	for _, item := range []*models.MenuItem{devices, subs} {
		if err := db.Create(item).Error; err != nil {
			return err
		}
	}

	iptv := newItem("IPTV", "/us/products", &subs.ID, 0)
	vpn := newItem("VPN", "/us/products", &subs.ID, 1)
	for _, item := range []*models.MenuItem{iptv, vpn} {
		if err := db.Create(item).Error; err != nil {
			return err
		}
	}

	return nil
}
