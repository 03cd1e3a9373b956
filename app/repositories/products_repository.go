package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByRegion(ctx context.Context, region models.Region) ([]models.Product, error)
	GetFeaturedByRegion(ctx context.Context, region models.Region, limit int) ([]models.Product, error)
	GetByCategorySlugRegion(ctx context.Context, categorySlug string, region models.Region) ([]models.Product, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ReplaceRegions(ctx context.Context, productID string, rows []models.ProductRegion) error
	SyncRegions(ctx context.Context, productID string, upserts []models.ProductRegion, removals []models.Region) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductRegion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("Regions").
		First(&product, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("Regions").
		First(&product, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("Regions").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}

// GetByRegion lists products with an available override row for the
// region. Products with zero region rows never show up anywhere.
func (p *productRepository) GetByRegion(ctx context.Context, region models.Region) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Joins("JOIN product_regions pr ON pr.product_id = products.id").
		Where("pr.region = ? AND pr.available = ?", region, true).
		Preload("Category").
		Preload("Regions").
		Order("products.created_at DESC").
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetFeaturedByRegion(ctx context.Context, region models.Region, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Joins("JOIN product_regions pr ON pr.product_id = products.id").
		Where("pr.region = ? AND pr.available = ? AND products.is_featured = ?", region, true, true).
		Preload("Regions").
		Order("products.created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetByCategorySlugRegion(ctx context.Context, categorySlug string, region models.Region) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Joins("JOIN product_regions pr ON pr.product_id = products.id").
		Joins("JOIN categories c ON c.id = products.category_id").
		Where("c.slug = ? AND pr.region = ? AND pr.available = ?", categorySlug, region, true).
		Preload("Regions").
		Order("products.created_at DESC").
		Find(&products).Error
	return products, err
}

func (p *productRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// ReplaceRegions swaps the full set of region rows for a product in
// one transaction, so there is no observable window where the product
// has zero regions.
func (p *productRepository) ReplaceRegions(ctx context.Context, productID string, rows []models.ProductRegion) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductRegion{}).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].ProductID = productID
			if rows[i].ID == "" {
				rows[i].ID = uuid.New().String()
			}
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
}

// SyncRegions upserts region rows by (product, region) key and deletes
// only the explicitly named removals. Regions mentioned in neither
// list are left untouched, so a partial form submit cannot silently
// strip availability the admin never looked at.
func (p *productRepository) SyncRegions(ctx context.Context, productID string, upserts []models.ProductRegion, removals []models.Region) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range upserts {
			var existing models.ProductRegion
			err := tx.Where("product_id = ? AND region = ?", productID, row.Region).First(&existing).Error
			if err == gorm.ErrRecordNotFound {
				row.ID = uuid.New().String()
				row.ProductID = productID
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}
			existing.Available = row.Available
			existing.Price = row.Price
			existing.Currency = row.Currency
			existing.UpdatedAt = time.Now()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		}
		if len(removals) > 0 {
			if err := tx.Where("product_id = ? AND region IN ?", productID, removals).
				Delete(&models.ProductRegion{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
