package admin

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/services"
)

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Categories")

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetCategoriesPage: failed to load categories: %v", err)
		data["Message"] = "Failed to load categories."
		data["MessageStatus"] = "error"
	} else {
		data["Categories"] = categories
	}

	h.render.HTML(w, http.StatusOK, "admin/categories/index", data)
}

func (h *AdminHandler) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "New Category")
	data["FormAction"] = "/admin/categories/add"
	data["IsEdit"] = false

	h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) AddCategoryPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.categs.Create(r.Context(), services.CategoryInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Image:       r.PostFormValue("image"),
	})
	h.redirectResult(w, r, result, "/admin/categories", "Category created.")
}

func (h *AdminHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		log.Printf("EditCategoryPage: category %s not found: %v", categoryID, err)
		http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
		return
	}

	data := h.baseData(r, "Edit Category")
	data["FormAction"] = "/admin/categories/" + categoryID + "/edit"
	data["IsEdit"] = true
	data["Category"] = category

	h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) EditCategoryPost(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.categs.Update(r.Context(), categoryID, services.CategoryInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Image:       r.PostFormValue("image"),
	})
	h.redirectResult(w, r, result, "/admin/categories", "Category updated.")
}

// DeleteCategory surfaces the referential-integrity refusal when the
// category still has products.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	result := h.categs.Delete(r.Context(), categoryID)
	h.redirectResult(w, r, result, "/admin/categories", "Category deleted.")
}
