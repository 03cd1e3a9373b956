package services

import (
	"context"
	"time"

	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/utils/cache"
)

type PaymentSettingsInput struct {
	PayPalEnabled       bool
	PayPalDestination   string
	PayoneerEnabled     bool
	PayoneerDestination string
	WiseEnabled         bool
	WiseDestination     string
	BTCEnabled          bool
	BTCDestination      string
	BinanceEnabled      bool
	BinanceDestination  string
	USDTEnabled         bool
	USDTDestination     string
}

type SeoSettingsInput struct {
	SiteTitle       string
	SiteDescription string
	Keywords        string
	OGImage         string
}

type SettingsService struct {
	settingsRepo repositories.SettingsRepositoryImpl
	cache        *cache.Cache
}

func NewSettingsService(settingsRepo repositories.SettingsRepositoryImpl, c *cache.Cache) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, cache: c}
}

func (s *SettingsService) Payment(ctx context.Context) (*models.PaymentSettings, error) {
	tags := []string{cache.TagSettings}
	return cache.Memoize(s.cache, "settings:payment", cache.TTLSettings, tags, func() (*models.PaymentSettings, error) {
		return s.settingsRepo.GetPayment(ctx)
	})
}

func (s *SettingsService) Seo(ctx context.Context) (*models.SeoSettings, error) {
	tags := []string{cache.TagSettings}
	return cache.Memoize(s.cache, "settings:seo", cache.TTLSettings, tags, func() (*models.SeoSettings, error) {
		return s.settingsRepo.GetSeo(ctx)
	})
}

// UpdatePayment is last-write-wins over the singleton row.
func (s *SettingsService) UpdatePayment(ctx context.Context, input PaymentSettingsInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	settings, err := s.settingsRepo.GetPayment(ctx)
	if err != nil {
		return fail(failureMessage("load payment settings", err))
	}

	settings.PayPalEnabled = input.PayPalEnabled
	settings.PayPalDestination = input.PayPalDestination
	settings.PayoneerEnabled = input.PayoneerEnabled
	settings.PayoneerDestination = input.PayoneerDestination
	settings.WiseEnabled = input.WiseEnabled
	settings.WiseDestination = input.WiseDestination
	settings.BTCEnabled = input.BTCEnabled
	settings.BTCDestination = input.BTCDestination
	settings.BinanceEnabled = input.BinanceEnabled
	settings.BinanceDestination = input.BinanceDestination
	settings.USDTEnabled = input.USDTEnabled
	settings.USDTDestination = input.USDTDestination
	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.UpdatePayment(ctx, settings); err != nil {
		return fail(failureMessage("update payment settings", err))
	}

	s.cache.InvalidateTags(cache.TagSettings)
	return ok(settings)
}

func (s *SettingsService) UpdateSeo(ctx context.Context, input SeoSettingsInput) Result {
	if res := requireAdmin(ctx); res != nil {
		return *res
	}

	settings, err := s.settingsRepo.GetSeo(ctx)
	if err != nil {
		return fail(failureMessage("load seo settings", err))
	}

	settings.SiteTitle = input.SiteTitle
	settings.SiteDescription = input.SiteDescription
	settings.Keywords = input.Keywords
	settings.OGImage = input.OGImage
	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.UpdateSeo(ctx, settings); err != nil {
		return fail(failureMessage("update seo settings", err))
	}

	s.cache.InvalidateTags(cache.TagSettings)
	return ok(settings)
}
