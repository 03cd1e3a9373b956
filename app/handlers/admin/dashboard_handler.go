package admin

import (
	"log"
	"net/http"
)

func (h *AdminHandler) GetDashboardPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Dashboard")

	products, err := h.productRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetDashboardPage: failed to count products: %v", err)
	}
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetDashboardPage: failed to count categories: %v", err)
	}
	posts, err := h.postRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetDashboardPage: failed to count posts: %v", err)
	}
	pages, err := h.pageRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetDashboardPage: failed to count pages: %v", err)
	}
	orders, total, err := h.checkout.Orders(r.Context(), 10, 0)
	if err != nil {
		log.Printf("GetDashboardPage: failed to load orders: %v", err)
	}

	data["ProductCount"] = len(products)
	data["CategoryCount"] = len(categories)
	data["PostCount"] = len(posts)
	data["PageCount"] = len(pages)
	data["OrderCount"] = total
	data["RecentOrders"] = orders

	h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}
