package validators

import (
	"context"
	"strings"

	"github.com/imonsheikh/a11-b10-restaurant-management-server/models"
)

// OrderValidator implements [Validator] for purchase orders.
type OrderValidator struct {
}

func NewOrderValidator() Validator {
	return &OrderValidator{}
}

// Validate accepts models.Order and *models.Order.
// Default fields: purchase id, email, quantity, price.
func (v *OrderValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Order:
		return v.validateOrder(ctx, value, fields...)
	case *models.Order:
		return v.validateOrder(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *OrderValidator) validateOrder(_ context.Context, order models.Order, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPurchaseID, FieldEmail, FieldQuantity, FieldPrice}
	}

	for _, f := range fields {
		switch f {
		case FieldPurchaseID:
			if strings.TrimSpace(order.PurchaseID) == "" {
				return ErrEmptyPurchaseID
			}
		case FieldEmail:
			if strings.TrimSpace(order.Email) == "" {
				return ErrEmptyEmail
			}
		case FieldQuantity:
			if order.Quantity < 0 {
				return ErrNegativeQuantity
			}
		case FieldPrice:
			if order.Price < 0 {
				return ErrNegativePrice
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
