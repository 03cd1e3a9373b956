package admin

import (
	"net/http"
	"net/url"

	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/services"
	"github.com/unrolled/render"
)

// AdminHandler serves the back-office. List pages read straight from
// the repositories so admins always see fresh rows; mutations go
// through the action layer, which owns authorization and cache
// invalidation.
type AdminHandler struct {
	render *render.Render

	products *services.ProductService
	categs   *services.CategoryService
	content  *services.ContentService
	menus    *services.MenuService
	settings *services.SettingsService
	checkout *services.CheckoutService
	uploads  *services.UploadService

	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	postRepo     repositories.PostRepositoryImpl
	pageRepo     repositories.PageRepositoryImpl
	menuRepo     repositories.MenuRepositoryImpl
	imageRepo    repositories.ImageRepositoryImpl
}

func NewAdminHandler(
	r *render.Render,
	products *services.ProductService,
	categs *services.CategoryService,
	content *services.ContentService,
	menus *services.MenuService,
	settings *services.SettingsService,
	checkout *services.CheckoutService,
	uploads *services.UploadService,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	postRepo repositories.PostRepositoryImpl,
	pageRepo repositories.PageRepositoryImpl,
	menuRepo repositories.MenuRepositoryImpl,
	imageRepo repositories.ImageRepositoryImpl,
) *AdminHandler {
	return &AdminHandler{
		render:       r,
		products:     products,
		categs:       categs,
		content:      content,
		menus:        menus,
		settings:     settings,
		checkout:     checkout,
		uploads:      uploads,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
		pageRepo:     pageRepo,
		menuRepo:     menuRepo,
		imageRepo:    imageRepo,
	}
}

func (h *AdminHandler) baseData(r *http.Request, title string) map[string]interface{} {
	data := map[string]interface{}{
		"Title":       title,
		"IsAdminPage": true,
		"Regions":     models.Regions,
	}
	if user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User); ok && user != nil {
		data["User"] = user
	}
	if status := r.URL.Query().Get("status"); status != "" {
		data["MessageStatus"] = status
	}
	if msg := r.URL.Query().Get("message"); msg != "" {
		data["Message"] = msg
	}
	return data
}

// redirectResult turns an action result into the flash-param redirect
// the form pages expect; warnings ride along on success.
func (h *AdminHandler) redirectResult(w http.ResponseWriter, r *http.Request, result services.Result, successPath, successMsg string) {
	if result.Err != "" {
		http.Redirect(w, r, r.URL.Path+"?status=error&message="+url.QueryEscape(result.Err), http.StatusSeeOther)
		return
	}
	msg := successMsg
	for _, warning := range result.Warnings {
		msg += " Warning: " + warning
	}
	http.Redirect(w, r, successPath+"?status=success&message="+url.QueryEscape(msg), http.StatusSeeOther)
}

// jsonResult writes the uniform result shape for the JSON endpoints
// (menu editing, uploads).
func (h *AdminHandler) jsonResult(w http.ResponseWriter, result services.Result) {
	status := http.StatusOK
	if result.Err != "" {
		status = http.StatusBadRequest
		if result.Err == "Unauthorized" {
			status = http.StatusUnauthorized
		}
	}
	h.render.JSON(w, status, result)
}
