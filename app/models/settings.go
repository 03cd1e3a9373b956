package models

import "time"

// Payment rail keys. Each rail is a manual transfer destination shown
// verbatim to the buyer at checkout; there is no programmatic capture.
const (
	RailPayPal   = "paypal"
	RailPayoneer = "payoneer"
	RailWise     = "wise"
	RailBTC      = "btc"
	RailBinance  = "binance"
	RailUSDT     = "usdt"
)

var PaymentRails = []string{RailPayPal, RailPayoneer, RailWise, RailBTC, RailBinance, RailUSDT}

// PaymentSettings is a singleton row. Destination fields hold whatever
// the admin pasted: an email, a wallet address, or multi-line account
// details.
type PaymentSettings struct {
	ID                  string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	PayPalEnabled       bool   `gorm:"default:false"`
	PayPalDestination   string `gorm:"type:text"`
	PayoneerEnabled     bool   `gorm:"default:false"`
	PayoneerDestination string `gorm:"type:text"`
	WiseEnabled         bool   `gorm:"default:false"`
	WiseDestination     string `gorm:"type:text"`
	BTCEnabled          bool   `gorm:"default:false"`
	BTCDestination      string `gorm:"type:text"`
	BinanceEnabled      bool   `gorm:"default:false"`
	BinanceDestination  string `gorm:"type:text"`
	USDTEnabled         bool   `gorm:"default:false"`
	USDTDestination     string `gorm:"type:text"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// EnabledRails returns the rails a buyer may pick from, in display
// order, with their destinations.
func (s *PaymentSettings) EnabledRails() []PaymentRail {
	all := []PaymentRail{
		{Key: RailPayPal, Name: "PayPal", Enabled: s.PayPalEnabled, Destination: s.PayPalDestination},
		{Key: RailPayoneer, Name: "Payoneer", Enabled: s.PayoneerEnabled, Destination: s.PayoneerDestination},
		{Key: RailWise, Name: "Wise", Enabled: s.WiseEnabled, Destination: s.WiseDestination},
		{Key: RailBTC, Name: "Bitcoin", Enabled: s.BTCEnabled, Destination: s.BTCDestination},
		{Key: RailBinance, Name: "Binance Pay", Enabled: s.BinanceEnabled, Destination: s.BinanceDestination},
		{Key: RailUSDT, Name: "USDT", Enabled: s.USDTEnabled, Destination: s.USDTDestination},
	}
	var enabled []PaymentRail
	for _, rail := range all {
		if rail.Enabled {
			enabled = append(enabled, rail)
		}
	}
	return enabled
}

// RailEnabled reports whether the given rail key is currently enabled.
func (s *PaymentSettings) RailEnabled(key string) bool {
	for _, rail := range s.EnabledRails() {
		if rail.Key == key {
			return true
		}
	}
	return false
}

type PaymentRail struct {
	Key         string
	Name        string
	Enabled     bool
	Destination string
}

// SeoSettings holds global SEO defaults, singleton, last write wins.
type SeoSettings struct {
	ID              string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	SiteTitle       string `gorm:"size:255"`
	SiteDescription string `gorm:"size:500"`
	Keywords        string `gorm:"size:500"`
	OGImage         string `gorm:"size:500"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
