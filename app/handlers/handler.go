package handlers

import (
	"log"
	"net/http"

	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/services"
	"github.com/sellaap/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

// Handler serves the public storefront.
type Handler struct {
	render   *render.Render
	sessions sessions.SessionStore

	products   *services.ProductService
	categories *services.CategoryService
	content    *services.ContentService
	menus      *services.MenuService
	settings   *services.SettingsService
	checkout   *services.CheckoutService
}

func NewHandler(
	r *render.Render,
	s sessions.SessionStore,
	products *services.ProductService,
	categories *services.CategoryService,
	content *services.ContentService,
	menus *services.MenuService,
	settings *services.SettingsService,
	checkout *services.CheckoutService,
) *Handler {
	return &Handler{
		render:     r,
		sessions:   s,
		products:   products,
		categories: categories,
		content:    content,
		menus:      menus,
		settings:   settings,
		checkout:   checkout,
	}
}

const defaultRegion = models.RegionUS

// regionFor resolves the storefront region: the route segment wins,
// then the region remembered on the session, then the default.
func (h *Handler) regionFor(r *http.Request, routeRegion string) models.Region {
	if models.ValidRegion(routeRegion) {
		return models.Region(routeRegion)
	}
	if saved := h.sessions.GetRegion(r); models.ValidRegion(saved) {
		return models.Region(saved)
	}
	return defaultRegion
}

// baseData assembles the payload every public template expects: SEO
// defaults, header menu tree, session user and cart count.
func (h *Handler) baseData(r *http.Request, region models.Region) map[string]interface{} {
	data := map[string]interface{}{
		"Region":     string(region),
		"Regions":    models.Regions,
		"CartCount":  0,
		"IsLoggedIn": false,
	}

	if seo, err := h.settings.Seo(r.Context()); err == nil && seo != nil {
		data["Title"] = seo.SiteTitle
		data["SiteDescription"] = seo.SiteDescription
		data["Keywords"] = seo.Keywords
		data["OGImage"] = seo.OGImage
	} else if err != nil {
		log.Printf("baseData: failed to load seo settings: %v", err)
	}

	if tree, err := h.menus.TreeByLocation(r.Context(), "header"); err == nil {
		data["HeaderMenu"] = tree
	} else {
		log.Printf("baseData: failed to load header menu: %v", err)
	}

	cart := h.sessions.GetCart(r)
	count := 0
	for _, qty := range cart {
		count += qty
	}
	data["CartCount"] = count

	if user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User); ok && user != nil {
		data["IsLoggedIn"] = true
		data["User"] = user
		data["IsAdmin"] = user.IsAdmin()
	}

	if status := r.URL.Query().Get("status"); status != "" {
		data["MessageStatus"] = status
	}
	if msg := r.URL.Query().Get("message"); msg != "" {
		data["Message"] = msg
	}

	return data
}
