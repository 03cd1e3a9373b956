package middlewares

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/sellaap/go-storefront/app/helpers"
	"github.com/sellaap/go-storefront/app/repositories"
	"github.com/sellaap/go-storefront/app/utils/sessions"
)

// SessionUserMiddleware resolves the session user once per request and
// stores it on the context for handlers and the action layer.
func SessionUserMiddleware(store sessions.SessionStore, userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := store.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil || user == nil {
				log.Printf("SessionUserMiddleware: failed to load user %s: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = r.ParseForm()
			override := r.Form.Get("_method")
			if override != "" {
				r.Method = strings.ToUpper(override)
			}
		}
		next.ServeHTTP(w, r)
	})
}
