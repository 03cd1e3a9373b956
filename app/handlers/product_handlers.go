package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/shopspring/decimal"
)

// productView is a product with its region-resolved price attached for
// the template.
type productView struct {
	models.Product
	EffectivePrice    decimal.Decimal
	EffectiveCurrency string
}

func regionViews(products []models.Product, region models.Region) []productView {
	views := make([]productView, 0, len(products))
	for i := range products {
		price, currency, available := products[i].ResolveRegion(region)
		if !available {
			continue
		}
		views = append(views, productView{
			Product:           products[i],
			EffectivePrice:    price,
			EffectiveCurrency: currency,
		})
	}
	return views
}

// ListProducts renders the region-filtered catalog, optionally scoped
// to one category slug.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	regionCode := vars["region"]
	if !models.ValidRegion(regionCode) {
		http.NotFound(w, r)
		return
	}
	region := models.Region(regionCode)

	var products []models.Product
	var err error
	categorySlug := r.URL.Query().Get("category")
	if categorySlug != "" {
		products, err = h.products.ListByCategoryRegion(r.Context(), categorySlug, region)
	} else {
		products, err = h.products.ListByRegion(r.Context(), region)
	}
	if err != nil {
		log.Printf("ListProducts: failed to load products for %s: %v", region, err)
	}

	data := h.baseData(r, region)
	data["Products"] = regionViews(products, region)
	if categorySlug != "" {
		data["CategorySlug"] = categorySlug
	}

	h.render.HTML(w, http.StatusOK, "products/index", data)
}

// ProductDetail renders one product at the prices of the visitor's
// region; a product unavailable there renders a not-available page
// rather than leaking base pricing.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]
	region := h.regionFor(r, vars["region"])

	product, err := h.products.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("ProductDetail: failed to load product %s: %v", slug, err)
		http.NotFound(w, r)
		return
	}
	if product == nil {
		http.NotFound(w, r)
		return
	}

	data := h.baseData(r, region)
	data["Product"] = product

	price, currency, available := product.ResolveRegion(region)
	data["Available"] = available
	if available {
		data["EffectivePrice"] = price
		data["EffectiveCurrency"] = currency
	}

	h.render.HTML(w, http.StatusOK, "products/detail", data)
}
