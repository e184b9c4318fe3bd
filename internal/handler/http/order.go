package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// purchase records an order and counts it against the purchased listing.
// The response carries the stored order's insert result.
func (h *Handler) purchase(w http.ResponseWriter, r *http.Request) {
	var order models.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		writeError(w, r, "*Handler.purchase", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	result, err := h.services.OrderService.Purchase(r.Context(), order)
	if err != nil {
		writeError(w, r, "*Handler.purchase", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) ordersByEmail(w http.ResponseWriter, r *http.Request) {
	orders, err := h.services.OrderService.GetOrdersByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, "*Handler.ordersByEmail", err)
		return
	}

	utils.WriteJSON(w, orders, http.StatusOK)
}

// deleteOrder removes an order owned by the authenticated user. Deleting
// an unknown id succeeds with a zero deletedCount.
func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	result, err := h.services.OrderService.DeleteOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.deleteOrder", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}
