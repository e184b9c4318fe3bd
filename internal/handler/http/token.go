package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// issueToken signs a credential for the posted email and stores it in the
// token cookie.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var request models.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, "*Handler.issueToken", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	token, err := h.services.AuthService.IssueToken(r.Context(), request.Email)
	if err != nil {
		writeError(w, r, "*Handler.issueToken", err)
		return
	}

	http.SetCookie(w, h.tokenCookie(token.SignedString, token.ExpiresAt))
	logger.FromRequest(r).Debug().Str("func", "*Handler.issueToken").Str("email", token.Email).Msg("token issued")

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

// logout expires the token cookie. The credential itself stays valid until
// its expiry.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	cookie := h.tokenCookie("", time.Time{})
	cookie.MaxAge = -1
	http.SetCookie(w, cookie)

	utils.WriteJSON(w, models.SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handler) tokenCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     tokenCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: h.sameSite,
	}
}

func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Restaurant server is running"))
}
