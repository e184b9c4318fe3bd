package models

import "time"

// Order is a single purchase of a food listing.
// Orders are created once by the purchase workflow, deleted by their owner
// and never updated in place.
type Order struct {
	// ID is the store-assigned identifier of the order.
	ID string `json:"_id" bson:"_id"`

	// PurchaseID references the purchased [Food] listing.
	// The reference is not cleaned up if the listing is deleted later.
	PurchaseID string `json:"purchaseId" bson:"purchaseId"`

	// FoodName is a snapshot of the listing name at purchase time.
	FoodName string `json:"foodName" bson:"foodName"`

	// FoodImage is a snapshot of the listing image at purchase time.
	FoodImage string `json:"foodImage" bson:"foodImage"`

	// Price is the price paid.
	Price float64 `json:"price" bson:"price"`

	// Quantity is the purchased amount.
	Quantity int `json:"quantity" bson:"quantity"`

	// Email identifies the purchaser and is the ownership key of the order.
	Email string `json:"email" bson:"email"`

	// BuyerName is the purchaser's display name.
	BuyerName string `json:"buyerName" bson:"buyerName"`

	// Date is the purchase time. Filled by the server when omitted.
	Date time.Time `json:"date" bson:"date"`
}
