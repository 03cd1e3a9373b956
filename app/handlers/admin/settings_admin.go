package admin

import (
	"log"
	"net/http"

	"github.com/sellaap/go-storefront/app/services"
)

func (h *AdminHandler) GetSettingsPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Settings")

	payment, err := h.settings.Payment(r.Context())
	if err != nil {
		log.Printf("GetSettingsPage: failed to load payment settings: %v", err)
	}
	seo, err := h.settings.Seo(r.Context())
	if err != nil {
		log.Printf("GetSettingsPage: failed to load seo settings: %v", err)
	}

	data["Payment"] = payment
	data["Seo"] = seo

	h.render.HTML(w, http.StatusOK, "admin/settings/index", data)
}

func (h *AdminHandler) UpdatePaymentSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.settings.UpdatePayment(r.Context(), services.PaymentSettingsInput{
		PayPalEnabled:       r.PostFormValue("paypal_enabled") == "1",
		PayPalDestination:   r.PostFormValue("paypal_destination"),
		PayoneerEnabled:     r.PostFormValue("payoneer_enabled") == "1",
		PayoneerDestination: r.PostFormValue("payoneer_destination"),
		WiseEnabled:         r.PostFormValue("wise_enabled") == "1",
		WiseDestination:     r.PostFormValue("wise_destination"),
		BTCEnabled:          r.PostFormValue("btc_enabled") == "1",
		BTCDestination:      r.PostFormValue("btc_destination"),
		BinanceEnabled:      r.PostFormValue("binance_enabled") == "1",
		BinanceDestination:  r.PostFormValue("binance_destination"),
		USDTEnabled:         r.PostFormValue("usdt_enabled") == "1",
		USDTDestination:     r.PostFormValue("usdt_destination"),
	})
	h.redirectResult(w, r, result, "/admin/settings", "Payment settings saved.")
}

func (h *AdminHandler) UpdateSeoSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.settings.UpdateSeo(r.Context(), services.SeoSettingsInput{
		SiteTitle:       r.PostFormValue("site_title"),
		SiteDescription: r.PostFormValue("site_description"),
		Keywords:        r.PostFormValue("keywords"),
		OGImage:         r.PostFormValue("og_image"),
	})
	h.redirectResult(w, r, result, "/admin/settings", "SEO settings saved.")
}
