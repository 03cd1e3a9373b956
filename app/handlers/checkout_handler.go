package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/sellaap/go-storefront/app/models"
	"github.com/sellaap/go-storefront/app/services"
)

// CheckoutPage lists the enabled manual payment rails with their
// destinations shown verbatim; the buyer picks one and pays
// off-platform.
func (h *Handler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	region := h.regionFor(r, "")

	cart := h.sessions.GetCart(r)
	if len(cart) == 0 {
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("Your cart is empty."), http.StatusSeeOther)
		return
	}

	settings, err := h.settings.Payment(r.Context())
	if err != nil {
		log.Printf("CheckoutPage: failed to load payment settings: %v", err)
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("Checkout is temporarily unavailable."), http.StatusSeeOther)
		return
	}

	data := h.baseData(r, region)
	data["Rails"] = settings.EnabledRails()

	h.render.HTML(w, http.StatusOK, "checkout/index", data)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape("invalid form"), http.StatusSeeOther)
		return
	}

	region := h.regionFor(r, "")
	input := services.CheckoutInput{
		Region:        string(region),
		CustomerName:  r.PostFormValue("name"),
		CustomerEmail: r.PostFormValue("email"),
		PaymentMethod: r.PostFormValue("payment_method"),
		Cart:          h.sessions.GetCart(r),
	}

	result := h.checkout.PlaceOrder(r.Context(), input)
	if result.Err != "" {
		http.Redirect(w, r, "/checkout?status=error&message="+url.QueryEscape(result.Err), http.StatusSeeOther)
		return
	}

	if err := h.sessions.ClearCart(w, r); err != nil {
		log.Printf("PlaceOrder: failed to clear cart: %v", err)
	}

	order := result.Data.(*models.Order)
	http.Redirect(w, r, "/orders/"+order.Code, http.StatusSeeOther)
}

// OrderConfirmation shows the placed order together with the selected
// rail's destination so the buyer knows where to send payment.
func (h *Handler) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	region := h.regionFor(r, "")
	code := mux.Vars(r)["code"]

	order, err := h.checkout.OrderByCode(r.Context(), code)
	if err != nil || order == nil {
		http.NotFound(w, r)
		return
	}

	data := h.baseData(r, region)
	data["Order"] = order

	if settings, err := h.settings.Payment(r.Context()); err == nil {
		for _, rail := range settings.EnabledRails() {
			if rail.Key == order.PaymentMethod {
				data["Rail"] = rail
			}
		}
	}

	h.render.HTML(w, http.StatusOK, "checkout/confirmation", data)
}
