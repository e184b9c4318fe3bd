package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/service"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/internal/utils"
	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// foodPatchBody is the body of PUT /update-food/{id}. Clients may echo the
// read-only fields of a fetched listing; they are accepted and dropped.
type foodPatchBody struct {
	models.FoodPatch
	ID            json.RawMessage `json:"_id,omitempty"`
	PurchaseCount json.RawMessage `json:"purchaseCount,omitempty"`
	CreatedAt     json.RawMessage `json:"createdAt,omitempty"`
	UpdatedAt     json.RawMessage `json:"updatedAt,omitempty"`
}

// decodeFoodJSON decodes a listing body into v. Fields that v does not
// declare are rejected rather than dropped.
func decodeFoodJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

func (h *Handler) createFood(w http.ResponseWriter, r *http.Request) {
	var food models.Food
	if err := decodeFoodJSON(r, &food); err != nil {
		writeError(w, r, "*Handler.createFood", err)
		return
	}

	result, err := h.services.FoodService.CreateFood(r.Context(), food)
	if err != nil {
		writeError(w, r, "*Handler.createFood", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

// searchFoods lists the listings whose name contains the "search" query
// parameter. Without the parameter every listing is returned.
func (h *Handler) searchFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.services.FoodService.SearchFoods(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeError(w, r, "*Handler.searchFoods", err)
		return
	}

	utils.WriteJSON(w, foods, http.StatusOK)
}

func (h *Handler) getFood(w http.ResponseWriter, r *http.Request) {
	food, err := h.services.FoodService.GetFoodByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "*Handler.getFood", err)
		return
	}

	utils.WriteJSON(w, food, http.StatusOK)
}

func (h *Handler) foodsByOwner(w http.ResponseWriter, r *http.Request) {
	foods, err := h.services.FoodService.GetFoodsByOwner(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, "*Handler.foodsByOwner", err)
		return
	}

	utils.WriteJSON(w, foods, http.StatusOK)
}

// upsertFood merges the posted fields into the listing, creating it under
// the path id when it does not exist.
func (h *Handler) upsertFood(w http.ResponseWriter, r *http.Request) {
	var body foodPatchBody
	if err := decodeFoodJSON(r, &body); err != nil {
		writeError(w, r, "*Handler.upsertFood", err)
		return
	}

	result, err := h.services.FoodService.UpsertFood(r.Context(), chi.URLParam(r, "id"), body.FoodPatch)
	if err != nil {
		writeError(w, r, "*Handler.upsertFood", err)
		return
	}

	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *Handler) topFoods(w http.ResponseWriter, r *http.Request) {
	foods, err := h.services.FoodService.GetTopFoods(r.Context(), service.TopFoodsLimit)
	if err != nil {
		writeError(w, r, "*Handler.topFoods", err)
		return
	}

	utils.WriteJSON(w, foods, http.StatusOK)
}
