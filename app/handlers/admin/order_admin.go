package admin

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const ordersPerPage = 25

func (h *AdminHandler) GetOrdersPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Orders")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	orders, total, err := h.checkout.Orders(r.Context(), ordersPerPage, (page-1)*ordersPerPage)
	if err != nil {
		log.Printf("GetOrdersPage: failed to load orders: %v", err)
		data["Message"] = "Failed to load orders."
		data["MessageStatus"] = "error"
	} else {
		data["Orders"] = orders
		data["Total"] = total
		data["Page"] = page
		data["TotalPages"] = (total + ordersPerPage - 1) / ordersPerPage
	}

	h.render.HTML(w, http.StatusOK, "admin/orders/index", data)
}

func (h *AdminHandler) MarkOrderPaid(w http.ResponseWriter, r *http.Request) {
	result := h.checkout.MarkPaid(r.Context(), mux.Vars(r)["id"])
	h.redirectResult(w, r, result, "/admin/orders", "Order marked as paid.")
}

func (h *AdminHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	result := h.checkout.Cancel(r.Context(), mux.Vars(r)["id"])
	h.redirectResult(w, r, result, "/admin/orders", "Order cancelled.")
}
