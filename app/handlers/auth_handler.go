package handlers

import (
	"log"
	"net/http"
	"net/url"

	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/repositories"
)

// AuthHandler handles admin login and logout.
type AuthHandler struct {
	base     *Handler
	userRepo repositories.UserRepositoryImpl
}

func NewAuthHandler(base *Handler, userRepo repositories.UserRepositoryImpl) *AuthHandler {
	return &AuthHandler{base: base, userRepo: userRepo}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	region := h.base.regionFor(r, "")
	data := h.base.baseData(r, region)
	data["Title"] = "Log in"

	h.base.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("invalid form"), http.StatusSeeOther)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Email and password are required."), http.StatusSeeOther)
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("LoginPost: failed to look up %s: %v", email, err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Login failed."), http.StatusSeeOther)
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Invalid email or password."), http.StatusSeeOther)
		return
	}

	if err := h.base.sessions.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPost: failed to save session: %v", err)
		http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("Login failed."), http.StatusSeeOther)
		return
	}

	if user.IsAdmin() {
		http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.base.sessions.ClearUserID(w, r); err != nil {
		log.Printf("Logout: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
