package validators

import (
	"context"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldPrice targets the unit price of a listing or order.
	FieldPrice = "price"

	// FieldQuantity targets the quantity of a listing or order.
	FieldQuantity = "quantity"

	// FieldPurchaseID targets the listing id referenced by an order.
	FieldPurchaseID = "purchase_id"

	// FieldEmail targets the purchaser email of an order.
	FieldEmail = "email"

	// FieldNotEmpty requires a patch to carry at least one field.
	FieldNotEmpty = "not_empty"
)

// FoodValidator implements [Validator] for food listings and listing patches.
//
// Listings may be partial, so only numeric sanity is enforced:
// price and quantity must not be negative when present.
type FoodValidator struct {
}

// NewFoodValidator constructs a new FoodValidator
// and returns it as the Validator interface.
func NewFoodValidator() Validator {
	return &FoodValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.Food / *models.Food
//   - models.FoodPatch / *models.FoodPatch
//
// Returns ErrUnsupportedType for anything else.
func (v *FoodValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Food:
		return v.validateFood(ctx, value, fields...)
	case *models.Food:
		return v.validateFood(ctx, *value, fields...)

	case models.FoodPatch:
		return v.validateFoodPatch(ctx, value, fields...)
	case *models.FoodPatch:
		return v.validateFoodPatch(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *FoodValidator) validateFood(_ context.Context, food models.Food, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPrice, FieldQuantity}
	}

	for _, f := range fields {
		switch f {
		case FieldPrice:
			if food.Price < 0 {
				return ErrNegativePrice
			}
		case FieldQuantity:
			if food.Quantity < 0 {
				return ErrNegativeQuantity
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateFoodPatch checks only the fields the patch carries.
// FieldNotEmpty is opt-in: an empty patch still refreshes updatedAt.
func (v *FoodValidator) validateFoodPatch(_ context.Context, patch models.FoodPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPrice, FieldQuantity}
	}

	for _, f := range fields {
		switch f {
		case FieldPrice:
			if patch.Price != nil && *patch.Price < 0 {
				return ErrNegativePrice
			}
		case FieldQuantity:
			if patch.Quantity != nil && *patch.Quantity < 0 {
				return ErrNegativeQuantity
			}
		case FieldNotEmpty:
			if patch.IsEmpty() {
				return ErrEmptyPatch
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
