package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/service"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
)

// ownership rejects requests whose {email} route parameter is not the
// authenticated email. It must run after auth.
func (h *Handler) ownership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")

		if err := service.CheckOwnership(r.Context(), email); err != nil {
			logger.FromRequest(r).Err(err).
				Str("func", "*Handler.ownership").
				Str("email", email).
				Msg("ownership check failed")
			utils.WriteMessage(w, ErrEmailMismatch.Error(), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}
