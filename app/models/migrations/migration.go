package migrations

import (
	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductRegion{},
		&models.Tag{},
		&models.Post{},
		&models.Page{},
		&models.Image{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentSettings{},
		&models.SeoSettings{},
	)
}
