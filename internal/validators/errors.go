package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrEmptyPurchaseID  = errors.New("purchaseId is required")
	ErrEmptyEmail       = errors.New("email is required")
	ErrEmptyFoodID      = errors.New("food id is required")
	ErrEmptyPatch       = errors.New("at least one field must be provided for update")
)
