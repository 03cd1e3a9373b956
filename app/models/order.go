package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. Payments are manual rails, so an order stays pending
// until an admin confirms the transfer arrived.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Code          string          `gorm:"size:50;not null;uniqueIndex"`
	Region        Region          `gorm:"size:20;not null"`
	CustomerName  string          `gorm:"size:200;not null"`
	CustomerEmail string          `gorm:"size:200;not null"`
	PaymentMethod string          `gorm:"size:30;not null"`
	Status        string          `gorm:"size:20;not null;default:'pending'"`
	Total         decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Currency      string          `gorm:"size:3;not null"`
	Items         []OrderItem
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem snapshots the region-resolved price at purchase time so
// later catalog edits do not rewrite order history.
type OrderItem struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID     string          `gorm:"size:36;not null;index"`
	ProductID   string          `gorm:"size:36;not null;index"`
	ProductName string          `gorm:"size:255;not null"`
	Qty         int             `gorm:"not null;default:1"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Currency    string          `gorm:"size:3;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
