package http

import (
	"errors"
	"net/http"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/logger"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/service"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/store"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/validators"
)

// errorMapping pairs a sentinel with its HTTP status and response message.
// An empty message means the status text is sent.
type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order; the first match wins.
var errorMappings = []errorMapping{
	{service.ErrInvalidToken, http.StatusUnauthorized, ErrTokenInvalid.Error()},
	{service.ErrUnauthenticated, http.StatusUnauthorized, ErrTokenMissing.Error()},
	{service.ErrEmailMismatch, http.StatusUnauthorized, ErrEmailMismatch.Error()},

	{ErrInvalidJSON, http.StatusBadRequest, ErrInvalidJSON.Error()},
	{validators.ErrNegativePrice, http.StatusBadRequest, validators.ErrNegativePrice.Error()},
	{validators.ErrNegativeQuantity, http.StatusBadRequest, validators.ErrNegativeQuantity.Error()},
	{validators.ErrEmptyPurchaseID, http.StatusBadRequest, validators.ErrEmptyPurchaseID.Error()},
	{validators.ErrEmptyEmail, http.StatusBadRequest, validators.ErrEmptyEmail.Error()},
	{validators.ErrEmptyFoodID, http.StatusBadRequest, validators.ErrEmptyFoodID.Error()},
	{validators.ErrEmptyPatch, http.StatusBadRequest, validators.ErrEmptyPatch.Error()},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, service.ErrInvalidDataProvided.Error()},

	{store.ErrFoodNotFound, http.StatusNotFound, "food not found"},
	{store.ErrOrderNotFound, http.StatusNotFound, "order not found"},
	{store.ErrFoodAlreadyExists, http.StatusConflict, "food already exists"},

	{store.ErrBuildingSQLQuery, http.StatusInternalServerError, ""},
	{store.ErrExecutingQuery, http.StatusInternalServerError, ""},
	{store.ErrBeginningTransaction, http.StatusInternalServerError, ""},
	{store.ErrCommitingTransaction, http.StatusInternalServerError, ""},
	{store.ErrExecutingStatement, http.StatusInternalServerError, ""},
	{store.ErrScanningRow, http.StatusInternalServerError, ""},
	{store.ErrScanningRows, http.StatusInternalServerError, ""},
}

func statusFromError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			if m.message == "" {
				return m.status, http.StatusText(m.status)
			}
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError logs err and writes the mapped JSON message response.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, message := statusFromError(err)

	event := logger.FromRequest(r).Err(err).Str("func", funcName).Int("status", status)
	if status >= http.StatusInternalServerError {
		event.Msg("request failed")
	} else {
		event.Msg("request rejected")
	}

	utils.WriteMessage(w, message, status)
}
