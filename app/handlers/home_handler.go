package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// RootRedirect sends bare "/" visits to their remembered (or default)
// regional landing page.
func (h *Handler) RootRedirect(w http.ResponseWriter, r *http.Request) {
	region := h.regionFor(r, "")
	http.Redirect(w, r, "/"+string(region), http.StatusFound)
}

// RegionHome renders the localized landing page: featured products at
// regional prices plus the header menu and SEO defaults.
func (h *Handler) RegionHome(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	regionCode := vars["region"]

	region := h.regionFor(r, regionCode)
	if string(region) != regionCode {
		http.NotFound(w, r)
		return
	}
	if err := h.sessions.SetRegion(w, r, regionCode); err != nil {
		log.Printf("RegionHome: failed to remember region: %v", err)
	}

	data := h.baseData(r, region)

	featured, err := h.products.FeaturedByRegion(r.Context(), region, 6)
	if err != nil {
		log.Printf("RegionHome: failed to load featured products: %v", err)
	} else {
		data["Featured"] = featured
	}

	categories, err := h.categories.List(r.Context())
	if err != nil {
		log.Printf("RegionHome: failed to load categories: %v", err)
	} else {
		data["Categories"] = categories
	}

	h.render.HTML(w, http.StatusOK, "home", data)
}
