package middlewares

import (
	"log"
	"net/http"
	"net/url"

	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/models"
)

// AdminAuthMiddleware guards the /admin subrouter. The action layer
// re-checks the role on every mutation; this gate only keeps the admin
// pages themselves from rendering for outsiders.
func AdminAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := r.Context().Value(helpers.ContextKeyUser).(*models.User)
			if user == nil {
				http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("You must log in to access the admin panel."), http.StatusFound)
				return
			}

			if !user.IsAdmin() {
				log.Printf("AdminAuthMiddleware: user %s (%s) attempted to access admin panel without admin role.", user.ID, user.Email)
				http.Redirect(w, r, "/?status=error&message="+url.QueryEscape("You do not have permission to access this page."), http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
