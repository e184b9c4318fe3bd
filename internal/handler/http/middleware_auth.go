package http

import (
	"errors"
	"net/http"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
)

// auth is an HTTP middleware that enforces cookie-based JWT authentication.
//
// It reads the "token" cookie, verifies it via
// [service.AuthService.VerifyToken] and, on success, stores the decoded
// [models.Identity] in the request context under [utils.IdentityCtxKey]
// before delegating to the next handler. The token is never read from the
// body or from headers.
//
// The middleware rejects requests with HTTP 401 Unauthorized and a JSON
// message body in the following cases:
//   - The cookie is absent or empty ([ErrTokenMissing]).
//   - The token is expired, malformed or signed with another key ([ErrTokenInvalid]).
//
// A rejected request never reaches next.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromCookie(r)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Send()
			utils.WriteMessage(w, ErrTokenMissing.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		identity, err := h.services.AuthService.VerifyToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Str("func", "*Handler.auth").Msg("token verification failed")
			utils.WriteMessage(w, ErrTokenInvalid.Error(), http.StatusUnauthorized)
			return
		}

		// Store the identity so that downstream handlers and services can
		// retrieve it without re-parsing the token.
		ctx = utils.WithIdentity(ctx, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromCookie returns the value of the "token" cookie.
// A missing or empty cookie yields [ErrTokenMissing].
func getTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(tokenCookieName)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return "", ErrTokenMissing
	}
	if err != nil {
		return "", err
	}

	return cookie.Value, nil
}
