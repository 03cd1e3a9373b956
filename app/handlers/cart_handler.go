package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

type cartLine struct {
	ProductID string
	Name      string
	Qty       int
	Price     decimal.Decimal
	Currency  string
	Subtotal  decimal.Decimal
}

func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	region := h.regionFor(r, "")
	cart := h.sessions.GetCart(r)

	data := h.baseData(r, region)

	var lines []cartLine
	total := decimal.Zero
	currency := ""
	for productID, qty := range cart {
		product, err := h.products.GetByID(r.Context(), productID)
		if err != nil || product == nil {
			log.Printf("ViewCart: dropping unknown product %s from cart: %v", productID, err)
			continue
		}
		price, itemCurrency, available := product.ResolveRegion(region)
		if !available {
			continue
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
		lines = append(lines, cartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Qty:       qty,
			Price:     price,
			Currency:  itemCurrency,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
		currency = itemCurrency
	}
	data["Lines"] = lines
	data["Total"] = total
	data["Currency"] = currency

	h.render.HTML(w, http.StatusOK, "cart/index", data)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("invalid form"), http.StatusSeeOther)
		return
	}

	productID := r.PostFormValue("product_id")
	qty, err := strconv.Atoi(r.PostFormValue("qty"))
	if err != nil || qty < 1 {
		qty = 1
	}
	if productID == "" {
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("missing product"), http.StatusSeeOther)
		return
	}

	cart := h.sessions.GetCart(r)
	cart[productID] += qty
	if err := h.sessions.SetCart(w, r, cart); err != nil {
		log.Printf("AddToCart: failed to save cart: %v", err)
	}

	http.Redirect(w, r, "/cart?status=success&message="+url.QueryEscape("Added to cart."), http.StatusSeeOther)
}

func (h *Handler) UpdateCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("invalid form"), http.StatusSeeOther)
		return
	}

	productID := r.PostFormValue("product_id")
	qty, err := strconv.Atoi(r.PostFormValue("qty"))
	if err != nil || productID == "" {
		http.Redirect(w, r, "/cart?status=error&message="+url.QueryEscape("invalid quantity"), http.StatusSeeOther)
		return
	}

	cart := h.sessions.GetCart(r)
	if qty <= 0 {
		delete(cart, productID)
	} else {
		cart[productID] = qty
	}
	if err := h.sessions.SetCart(w, r, cart); err != nil {
		log.Printf("UpdateCart: failed to save cart: %v", err)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	cart := h.sessions.GetCart(r)
	delete(cart, r.PostFormValue("product_id"))
	if err := h.sessions.SetCart(w, r, cart); err != nil {
		log.Printf("RemoveFromCart: failed to save cart: %v", err)
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
