package admin

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/services"
)

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "Products")

	products, err := h.productRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetProductsPage: failed to load products: %v", err)
		data["Message"] = "Failed to load products."
		data["MessageStatus"] = "error"
	} else {
		data["Products"] = products
	}

	h.render.HTML(w, http.StatusOK, "admin/products/index", data)
}

func (h *AdminHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	data := h.baseData(r, "New Product")
	data["FormAction"] = "/admin/products/add"
	data["IsEdit"] = false

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("AddProductPage: failed to load categories: %v", err)
	}
	data["Categories"] = categories

	h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}

func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	input, err := parseProductForm(r)
	if err != nil {
		h.redirectResult(w, r, services.Result{Err: err.Error()}, "", "")
		return
	}

	result := h.products.Create(r.Context(), input)
	h.redirectResult(w, r, result, "/admin/products", "Product created.")
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil || product == nil {
		log.Printf("EditProductPage: product %s not found: %v", productID, err)
		http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
		return
	}

	data := h.baseData(r, "Edit Product")
	data["FormAction"] = "/admin/products/" + productID + "/edit"
	data["IsEdit"] = true
	data["Product"] = product

	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("EditProductPage: failed to load categories: %v", err)
	}
	data["Categories"] = categories

	h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	input, err := parseProductForm(r)
	if err != nil {
		h.redirectResult(w, r, services.Result{Err: err.Error()}, "", "")
		return
	}

	result := h.products.Update(r.Context(), productID, input)
	h.redirectResult(w, r, result, "/admin/products", "Product updated.")
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	result := h.products.Delete(r.Context(), productID)
	h.redirectResult(w, r, result, "/admin/products", "Product deleted.")
}

// parseProductForm reads the flat product form, including one regional
// block per region code: region_<code> marks the row for upsert,
// region_<code>_remove marks it for deletion, and empty price/currency
// fields mean "fall back to base".
func parseProductForm(r *http.Request) (services.ProductInput, error) {
	if err := r.ParseForm(); err != nil {
		return services.ProductInput{}, err
	}

	input := services.ProductInput{
		Name:          r.PostFormValue("name"),
		Description:   r.PostFormValue("description"),
		Price:         r.PostFormValue("price"),
		Currency:      strings.ToUpper(r.PostFormValue("currency")),
		CategoryID:    r.PostFormValue("category_id"),
		Image:         r.PostFormValue("image"),
		FallbackImage: r.PostFormValue("fallback_image"),
		IsFeatured:    r.PostFormValue("is_featured") == "1",
	}

	for _, line := range strings.Split(r.PostFormValue("features"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			input.Features = append(input.Features, line)
		}
	}

	for _, region := range models.Regions {
		code := string(region)
		if r.PostFormValue("region_"+code+"_remove") == "1" {
			input.RemoveRegions = append(input.RemoveRegions, code)
			continue
		}
		if r.PostFormValue("region_"+code) != "1" {
			continue
		}
		input.Regions = append(input.Regions, services.RegionInput{
			Region:    code,
			Available: r.PostFormValue("region_"+code+"_available") == "1",
			Price:     strings.TrimSpace(r.PostFormValue("region_" + code + "_price")),
			Currency:  strings.ToUpper(strings.TrimSpace(r.PostFormValue("region_" + code + "_currency"))),
		})
	}

	return input, nil
}
