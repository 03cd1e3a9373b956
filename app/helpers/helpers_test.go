package helpers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "£8.00", FormatPrice(decimal.NewFromInt(8), "GBP"))
	assert.Equal(t, "$10.50", FormatPrice(decimal.NewFromFloat(10.5), "usd"))
	assert.Equal(t, "CHF 9.00", FormatPrice(decimal.NewFromInt(9), "CHF"))
}

func TestFeaturesRoundTrip(t *testing.T) {
	features := []string{"4K streaming", "Preloaded apps", "12 month warranty"}
	assert.Equal(t, features, DecodeFeatures(EncodeFeatures(features)))

	assert.Empty(t, EncodeFeatures(nil))
	assert.Nil(t, DecodeFeatures(""))
}

func TestDecodeFeaturesLegacyNewlines(t *testing.T) {
	raw := "4K streaming\n\n  Preloaded apps  \n"
	assert.Equal(t, []string{"4K streaming", "Preloaded apps"}, DecodeFeatures(raw))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash := HashPassword("admin12345")
	assert.NotEmpty(t, hash)
	assert.True(t, PasswordCompare(hash, []byte("admin12345")))
	assert.False(t, PasswordCompare(hash, []byte("wrong")))
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "firestick-4k-max", GenerateSlug("Firestick 4K Max"))
}
