package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolveRegionFallsBackToBasePrice(t *testing.T) {
	product := &Product{
		Price:    decimal.NewFromInt(10),
		Currency: "USD",
		Regions: []ProductRegion{
			{Region: RegionUK, Available: true},
		},
	}

	price, currency, ok := product.ResolveRegion(RegionUK)
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "USD", currency)
}

func TestResolveRegionUsesOverride(t *testing.T) {
	product := &Product{
		Price:    decimal.NewFromInt(10),
		Currency: "USD",
		Regions: []ProductRegion{
			{
				Region:    RegionUK,
				Available: true,
				Price:     decimal.NullDecimal{Decimal: decimal.NewFromInt(8), Valid: true},
				Currency:  strPtr("GBP"),
			},
		},
	}

	price, currency, ok := product.ResolveRegion(RegionUK)
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, "GBP", currency)
}

func TestResolveRegionPriceOverrideKeepsBaseCurrency(t *testing.T) {
	product := &Product{
		Price:    decimal.NewFromInt(10),
		Currency: "USD",
		Regions: []ProductRegion{
			{
				Region:    RegionCanada,
				Available: true,
				Price:     decimal.NullDecimal{Decimal: decimal.NewFromInt(12), Valid: true},
			},
		},
	}

	price, currency, ok := product.ResolveRegion(RegionCanada)
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "USD", currency)
}

func TestResolveRegionMissingRowMeansUnavailable(t *testing.T) {
	product := &Product{
		Price:    decimal.NewFromInt(10),
		Currency: "USD",
		Regions: []ProductRegion{
			{Region: RegionUK, Available: true},
		},
	}

	_, _, ok := product.ResolveRegion(RegionUS)
	assert.False(t, ok)
}

func TestResolveRegionUnavailableRow(t *testing.T) {
	product := &Product{
		Price:    decimal.NewFromInt(10),
		Currency: "USD",
		Regions: []ProductRegion{
			{
				Region:    RegionEurope,
				Available: false,
				Price:     decimal.NullDecimal{Decimal: decimal.NewFromInt(9), Valid: true},
				Currency:  strPtr("EUR"),
			},
		},
	}

	_, _, ok := product.ResolveRegion(RegionEurope)
	assert.False(t, ok)
}

func TestResolveRegionRejectsUnknownRegion(t *testing.T) {
	product := &Product{Price: decimal.NewFromInt(10), Currency: "USD"}

	_, _, ok := product.ResolveRegion(Region("mars"))
	assert.False(t, ok)
}

func TestValidRegion(t *testing.T) {
	for _, region := range Regions {
		assert.True(t, ValidRegion(string(region)))
	}
	assert.False(t, ValidRegion("usa"))
	assert.False(t, ValidRegion(""))
}
