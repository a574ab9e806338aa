package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DietaryTags are the accepted values for Product.Tags.
var DietaryTags = []string{"vegetarian", "vegan", "gluten-free", "spicy", "new", "house-special"}

// Product is a single menu line item. Price is deliberately loose (string or
// number) because this layer does not validate it numerically; the legacy
// store holds both. DeletedAt is the soft-delete marker: nil means alive.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ProductID    string             `bson:"id" json:"id" validate:"required,min=1,max=100"`
	Name         string             `bson:"name" json:"name" validate:"required,min=1,max=150"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Price        any                `bson:"price,omitempty" json:"price,omitempty"`
	CategoryID   string             `bson:"categoryId" json:"categoryId" validate:"required"`
	Section      string             `bson:"section,omitempty" json:"section,omitempty"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty" validate:"omitempty,dive,oneof=vegetarian vegan gluten-free spicy new house-special"`
	Hidden       bool               `bson:"hidden" json:"hidden"`
	HiddenReason string             `bson:"hiddenReason,omitempty" json:"hiddenReason,omitempty"`
	HiddenBy     string             `bson:"hiddenBy,omitempty" json:"hiddenBy,omitempty"`
	HiddenAt     *time.Time         `bson:"hiddenAt,omitempty" json:"hiddenAt,omitempty"`
	DeletedAt    *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	DeletedBy    string             `bson:"deletedBy,omitempty" json:"deletedBy,omitempty"`
	Order        int                `bson:"order" json:"order"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Deleted reports whether the product carries a soft-delete marker.
func (p Product) Deleted() bool {
	return p.DeletedAt != nil
}

// ProductPatch is the partial-update payload for a product sync. Only fields
// present and well-typed in the payload are merged into the stored document.
// There is intentionally no way to express deletedAt/deletedBy here: a sync
// can never clobber soft-delete state.
type ProductPatch struct {
	ProductID    string   `json:"id" validate:"required,min=1,max=100"`
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Description  *string  `json:"description,omitempty"`
	Price        any      `json:"price,omitempty"`
	CategoryID   *string  `json:"categoryId,omitempty"`
	Section      *string  `json:"section,omitempty"`
	Tags         []string `json:"tags,omitempty" validate:"omitempty,dive,oneof=vegetarian vegan gluten-free spicy new house-special"`
	Hidden       *bool    `json:"hidden,omitempty"`
	HiddenReason *string  `json:"hiddenReason,omitempty"`
	HiddenBy     *string  `json:"hiddenBy,omitempty"`
	Order        *int     `json:"order,omitempty"`
}
