package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Region is one of the five fixed storefront locales. Regional pricing,
// availability and legal pages are all keyed on it.
type Region string

const (
	RegionUK        Region = "uk"
	RegionUS        Region = "us"
	RegionCanada    Region = "canada"
	RegionEurope    Region = "europe"
	RegionAustralia Region = "australia"
)

var Regions = []Region{RegionUK, RegionUS, RegionCanada, RegionEurope, RegionAustralia}

// ValidRegion reports whether code belongs to the closed region set.
// Unknown codes are treated as "not available" everywhere.
func ValidRegion(code string) bool {
	for _, r := range Regions {
		if r == Region(code) {
			return true
		}
	}
	return false
}

type Product struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name          string          `gorm:"size:255;not null"`
	Slug          string          `gorm:"size:255;not null;uniqueIndex"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Currency      string          `gorm:"size:3;not null;default:'USD'"`
	CategoryID    *string         `gorm:"size:36;index"`
	Category      *Category       `gorm:"foreignKey:CategoryID"`
	Image         string          `gorm:"size:500"`
	FallbackImage string          `gorm:"size:500"`
	Features      string          `gorm:"type:text"`
	IsFeatured    bool            `gorm:"default:false"`
	Regions       []ProductRegion `gorm:"foreignKey:ProductID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// ProductRegion overrides a product's availability, price and currency
// for one region. At most one row may exist per (product, region). A
// product with no row for a region is unavailable there, even at base
// price.
type ProductRegion struct {
	ID        string              `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string              `gorm:"size:36;not null;uniqueIndex:idx_product_region"`
	Region    Region              `gorm:"size:20;not null;uniqueIndex:idx_product_region"`
	Available bool                `gorm:"not null;default:false"`
	Price     decimal.NullDecimal `gorm:"type:decimal(16,2)"`
	Currency  *string             `gorm:"size:3"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResolveRegion returns the effective price and currency of p for the
// given region, falling back to the base values when the override
// fields are null. ok is false when the product is not sold in that
// region: no row, an unavailable row, or an unknown region code.
// Requires the Regions association to be loaded.
func (p *Product) ResolveRegion(region Region) (decimal.Decimal, string, bool) {
	if !ValidRegion(string(region)) {
		return decimal.Decimal{}, "", false
	}
	for _, pr := range p.Regions {
		if pr.Region != region {
			continue
		}
		if !pr.Available {
			return decimal.Decimal{}, "", false
		}
		price := p.Price
		if pr.Price.Valid {
			price = pr.Price.Decimal
		}
		currency := p.Currency
		if pr.Currency != nil && *pr.Currency != "" {
			currency = *pr.Currency
		}
		return price, currency, true
	}
	return decimal.Decimal{}, "", false
}
