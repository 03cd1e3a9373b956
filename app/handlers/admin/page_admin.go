package admin

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/services"
)

func (h *AdminHandler) GetPagesPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Pages")

	pages, err := h.pageRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetPagesPage: failed to load pages: %v", err)
		data["Message"] = "Failed to load pages."
		data["MessageStatus"] = "error"
	} else {
		data["Pages"] = pages
	}

	h.render.HTML(w, http.StatusOK, "admin/pages/index", data)
}

func (h *AdminHandler) AddPagePage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "New Page")
	data["FormAction"] = "/admin/pages/add"
	data["IsEdit"] = false

	h.render.HTML(w, http.StatusOK, "admin/pages/form", data)
}

func (h *AdminHandler) AddPagePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.content.CreatePage(r.Context(), parsePageForm(r))
	h.redirectResult(w, r, result, "/admin/pages", "Page saved.")
}

func (h *AdminHandler) EditPagePage(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["id"]

	page, err := h.pageRepo.GetByID(r.Context(), pageID)
	if err != nil || page == nil {
		log.Printf("EditPagePage: page %s not found: %v", pageID, err)
		http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
		return
	}

	data := h.baseData(r, "Edit Page")
	data["FormAction"] = "/admin/pages/" + pageID + "/edit"
	data["IsEdit"] = true
	data["Page"] = page

	h.render.HTML(w, http.StatusOK, "admin/pages/form", data)
}

func (h *AdminHandler) EditPagePost(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.content.UpdatePage(r.Context(), pageID, parsePageForm(r))
	h.redirectResult(w, r, result, "/admin/pages", "Page saved.")
}

func (h *AdminHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	pageID := mux.Vars(r)["id"]

	result := h.content.DeletePage(r.Context(), pageID)
	h.redirectResult(w, r, result, "/admin/pages", "Page deleted.")
}

func parsePageForm(r *http.Request) services.PageInput {
	return services.PageInput{
		Title:           r.PostFormValue("title"),
		Content:         r.PostFormValue("content"),
		Status:          r.PostFormValue("status"),
		MetaTitle:       r.PostFormValue("meta_title"),
		MetaDescription: r.PostFormValue("meta_description"),
		Keywords:        r.PostFormValue("keywords"),
	}
}
