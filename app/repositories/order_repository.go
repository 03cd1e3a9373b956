package repositories

import (
	"context"

	"github.com/sellaap/go-storefront/app/models"
	"gorm.io/gorm"
)

type OrderRepositoryImpl interface {
	Create(ctx context.Context, order *models.Order) error
	GetByCode(ctx context.Context, code string) (*models.Order, error)
	GetPaginated(ctx context.Context, limit, offset int) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepositoryImpl {
	return &orderRepository{db: db}
}

// Create persists the order and its item snapshots together.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByCode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "code = ?", code).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetPaginated(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
