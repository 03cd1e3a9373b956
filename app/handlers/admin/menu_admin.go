package admin

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/services"
)

func (h *AdminHandler) GetMenusPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Menus")

	menus, err := h.menuRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetMenusPage: failed to load menus: %v", err)
		data["Message"] = "Failed to load menus."
		data["MessageStatus"] = "error"
	} else {
		data["Menus"] = menus
	}

	h.render.HTML(w, http.StatusOK, "admin/menus/index", data)
}

func (h *AdminHandler) AddMenuPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.menus.CreateMenu(r.Context(), services.MenuInput{
		Name:     r.PostFormValue("name"),
		Location: r.PostFormValue("location"),
	})
	h.redirectResult(w, r, result, "/admin/menus", "Menu created.")
}

// EditMenuPage renders the tree editor: the menu's items grouped into a
// nested structure the drag-and-drop UI manipulates via the JSON
// endpoints below.
func (h *AdminHandler) EditMenuPage(w http.ResponseWriter, r *http.Request) {
	menuID := mux.Vars(r)["id"]

	menu, err := h.menuRepo.GetByID(r.Context(), menuID)
	if err != nil || menu == nil {
		log.Printf("EditMenuPage: menu %s not found: %v", menuID, err)
		http.Redirect(w, r, "/admin/menus", http.StatusSeeOther)
		return
	}

	data := h.baseData(r, "Edit Menu")
	data["Menu"] = menu
	data["Tree"] = models.BuildMenuTree(menu.Items)

	h.render.HTML(w, http.StatusOK, "admin/menus/edit", data)
}

func (h *AdminHandler) EditMenuPost(w http.ResponseWriter, r *http.Request) {
	menuID := mux.Vars(r)["id"]

	if err := r.ParseForm(); err != nil {
		h.redirectResult(w, r, services.Result{Err: "invalid form"}, "", "")
		return
	}

	result := h.menus.UpdateMenu(r.Context(), menuID, services.MenuInput{
		Name:     r.PostFormValue("name"),
		Location: r.PostFormValue("location"),
	})
	h.redirectResult(w, r, result, "/admin/menus", "Menu updated.")
}

func (h *AdminHandler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	menuID := mux.Vars(r)["id"]

	result := h.menus.DeleteMenu(r.Context(), menuID)
	h.redirectResult(w, r, result, "/admin/menus", "Menu deleted.")
}

type menuItemPayload struct {
	Label    string `json:"label"`
	URL      string `json:"url"`
	Target   string `json:"target"`
	ParentID string `json:"parent_id"`
	Order    *int   `json:"order"`
}

func (h *AdminHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	menuID := mux.Vars(r)["id"]

	var payload menuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.jsonResult(w, services.Result{Err: "invalid request body"})
		return
	}

	result := h.menus.CreateItem(r.Context(), services.MenuItemInput{
		MenuID:   menuID,
		Label:    payload.Label,
		URL:      payload.URL,
		Target:   payload.Target,
		ParentID: payload.ParentID,
		Order:    payload.Order,
	})
	h.jsonResult(w, result)
}

func (h *AdminHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var payload menuItemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.jsonResult(w, services.Result{Err: "invalid request body"})
		return
	}

	result := h.menus.UpdateItem(r.Context(), vars["itemID"], services.MenuItemInput{
		MenuID:   vars["id"],
		Label:    payload.Label,
		URL:      payload.URL,
		Target:   payload.Target,
		ParentID: payload.ParentID,
		Order:    payload.Order,
	})
	h.jsonResult(w, result)
}

// ReorderMenuItems takes the full (id, order) list the editor submits
// after a drag and applies it as one batch.
func (h *AdminHandler) ReorderMenuItems(w http.ResponseWriter, r *http.Request) {
	menuID := mux.Vars(r)["id"]

	var payload struct {
		Orders []repositories.ItemOrder `json:"orders"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.jsonResult(w, services.Result{Err: "invalid request body"})
		return
	}

	result := h.menus.ReorderItems(r.Context(), menuID, payload.Orders)
	h.jsonResult(w, result)
}

func (h *AdminHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	result := h.menus.DeleteItem(r.Context(), mux.Vars(r)["itemID"])
	h.jsonResult(w, result)
}
