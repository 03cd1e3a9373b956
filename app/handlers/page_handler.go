package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
)

// PageDetail renders a CMS page. PRIVATE pages render only for
// logged-in admins; drafts and archived pages 404 publicly.
func (h *Handler) PageDetail(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	region := h.regionFor(r, "")

	page, err := h.content.PageBySlug(r.Context(), vars["slug"])
	if err != nil {
		log.Printf("PageDetail: failed to load page %s: %v", vars["slug"], err)
		http.NotFound(w, r)
		return
	}
	if page == nil {
		http.NotFound(w, r)
		return
	}

	switch page.Status {
	case models.StatusPublished:
	case models.StatusPrivate:
		user, _ := r.Context().Value(helpers.ContextKeyUser).(*models.User)
		if !user.IsAdmin() {
			http.NotFound(w, r)
			return
		}
	default:
		http.NotFound(w, r)
		return
	}

	data := h.baseData(r, region)
	data["Page"] = page
	if page.MetaTitle != "" {
		data["Title"] = page.MetaTitle
	} else {
		data["Title"] = page.Title
	}
	if page.MetaDescription != "" {
		data["SiteDescription"] = page.MetaDescription
	}

	h.render.HTML(w, http.StatusOK, "pages/detail", data)
}

// RegionPrivacy maps each region to its own legal page, stored under
// the slug "privacy-policy-{region}".
func (h *Handler) RegionPrivacy(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	regionCode := vars["region"]
	if !models.ValidRegion(regionCode) {
		http.NotFound(w, r)
		return
	}

	r = mux.SetURLVars(r, map[string]string{"slug": "privacy-policy-" + regionCode})
	h.PageDetail(w, r)
}
