package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

// Settings rows are singletons: reads create the row on first access,
// writes are last-write-wins.
type SettingsRepositoryImpl interface {
	GetPayment(ctx context.Context) (*models.PaymentSettings, error)
	UpdatePayment(ctx context.Context, settings *models.PaymentSettings) error
	GetSeo(ctx context.Context) (*models.SeoSettings, error)
	UpdateSeo(ctx context.Context, settings *models.SeoSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepositoryImpl {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetPayment(ctx context.Context) (*models.PaymentSettings, error) {
	var settings models.PaymentSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.PaymentSettings{ID: uuid.New().String()}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) UpdatePayment(ctx context.Context, settings *models.PaymentSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepository) GetSeo(ctx context.Context) (*models.SeoSettings, error) {
	var settings models.SeoSettings
	err := r.db.WithContext(ctx).First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.SeoSettings{ID: uuid.New().String()}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *settingsRepository) UpdateSeo(ctx context.Context, settings *models.SeoSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
