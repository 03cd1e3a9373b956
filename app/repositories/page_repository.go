package repositories

import (
	"context"

	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

type PageRepositoryImpl interface {
	Create(ctx context.Context, page *models.Page) error
	Update(ctx context.Context, page *models.Page) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Page, error)
	GetBySlug(ctx context.Context, slug string) (*models.Page, error)
	GetAll(ctx context.Context) ([]models.Page, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type pageRepository struct {
	db *gorm.DB
}

func NewPageRepository(db *gorm.DB) PageRepositoryImpl {
	return &pageRepository{db: db}
}

func (r *pageRepository) Create(ctx context.Context, page *models.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *pageRepository) Update(ctx context.Context, page *models.Page) error {
	return r.db.WithContext(ctx).Save(page).Error
}

func (r *pageRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Page{}, "id = ?", id).Error
}

func (r *pageRepository) GetByID(ctx context.Context, id string) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).First(&page, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) GetAll(ctx context.Context) ([]models.Page, error) {
	var pages []models.Page
	err := r.db.WithContext(ctx).Order("title ASC").Find(&pages).Error
	return pages, err
}

func (r *pageRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Page{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
