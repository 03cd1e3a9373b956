package repositories

import (
	"context"

	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

type ImageRepositoryImpl interface {
	Create(ctx context.Context, image *models.Image) error
	GetAll(ctx context.Context) ([]models.Image, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepositoryImpl {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) GetAll(ctx context.Context) ([]models.Image, error) {
	var images []models.Image
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&images).Error
	return images, err
}
