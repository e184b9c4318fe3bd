package models

import "time"

// Buyer describes the user who published a food listing.
// The email is the ownership key checked by the ownership guard.
type Buyer struct {
	// Email is the owner's email address. Compared case-sensitively
	// against the authenticated identity.
	Email string `json:"email" bson:"email"`

	// Name is the owner's display name.
	Name string `json:"name" bson:"name"`

	// Photo is an optional avatar URL.
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}

// Food represents a single food listing in the catalog.
type Food struct {
	// ID is the store-assigned identifier of the listing.
	// Serialized as "_id" to stay compatible with existing frontend clients.
	ID string `json:"_id" bson:"_id"`

	// FoodName is the searchable title of the listing.
	FoodName string `json:"foodName" bson:"foodName"`

	// FoodImage is an image URL.
	FoodImage string `json:"foodImage" bson:"foodImage"`

	// FoodCategory is a free-form category label (e.g. "Dessert").
	FoodCategory string `json:"foodCategory" bson:"foodCategory"`

	// Quantity is the amount available for purchase.
	Quantity int `json:"quantity" bson:"quantity"`

	// Price is the unit price.
	Price float64 `json:"price" bson:"price"`

	// FoodOrigin is the country or region the dish comes from.
	FoodOrigin string `json:"foodOrigin" bson:"foodOrigin"`

	// Description is a free-form description.
	Description string `json:"description" bson:"description"`

	// PurchaseCount is the number of committed purchases referencing this
	// listing. It is changed only by the purchase workflow.
	PurchaseCount int64 `json:"purchaseCount" bson:"purchaseCount"`

	// Buyer is the owner of the listing.
	Buyer Buyer `json:"buyer" bson:"buyer"`

	// CreatedAt is the insertion time. It defines the natural order of listings.
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`

	// UpdatedAt is the time of the last owner-initiated update.
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// FoodPatch carries a partial update of a [Food].
// Nil fields are retained as stored, non-nil fields overwrite the stored value.
// PurchaseCount is deliberately absent: it is not owner-editable.
type FoodPatch struct {
	FoodName     *string  `json:"foodName,omitempty"`
	FoodImage    *string  `json:"foodImage,omitempty"`
	FoodCategory *string  `json:"foodCategory,omitempty"`
	Quantity     *int     `json:"quantity,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	FoodOrigin   *string  `json:"foodOrigin,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Buyer        *Buyer   `json:"buyer,omitempty"`
}

// IsEmpty reports whether the patch does not change any field.
func (p FoodPatch) IsEmpty() bool {
	return p.FoodName == nil &&
		p.FoodImage == nil &&
		p.FoodCategory == nil &&
		p.Quantity == nil &&
		p.Price == nil &&
		p.FoodOrigin == nil &&
		p.Description == nil &&
		p.Buyer == nil
}

// Apply merges the patch into food and returns the result.
func (p FoodPatch) Apply(food Food) Food {
	if p.FoodName != nil {
		food.FoodName = *p.FoodName
	}
	if p.FoodImage != nil {
		food.FoodImage = *p.FoodImage
	}
	if p.FoodCategory != nil {
		food.FoodCategory = *p.FoodCategory
	}
	if p.Quantity != nil {
		food.Quantity = *p.Quantity
	}
	if p.Price != nil {
		food.Price = *p.Price
	}
	if p.FoodOrigin != nil {
		food.FoodOrigin = *p.FoodOrigin
	}
	if p.Description != nil {
		food.Description = *p.Description
	}
	if p.Buyer != nil {
		food.Buyer = *p.Buyer
	}

	return food
}
