package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a grouping node in the menu hierarchy. Field names follow the
// legacy camelCase document shape so existing collections stay readable
// without a migration. Visible is a pointer because legacy documents may lack
// the field entirely; a missing flag means visible (fail-open).
type Category struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	CategoryID     string             `bson:"id" json:"id" validate:"required,min=1,max=100"`
	Name           string             `bson:"name" json:"name" validate:"required,min=1,max=100"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Order          int                `bson:"order" json:"order"`
	Visible        *bool              `bson:"visible,omitempty" json:"visible,omitempty"`
	TimeRestricted bool               `bson:"timeRestricted" json:"timeRestricted"`
	StartTime      string             `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime        string             `bson:"endTime,omitempty" json:"endTime,omitempty"`
	IsSubcategory  bool               `bson:"isSubcategory" json:"isSubcategory"`
	ParentCategory string             `bson:"parentCategory,omitempty" json:"parentCategory,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsVisible resolves the explicit flag with its fail-open default.
func (c Category) IsVisible() bool {
	return c.Visible == nil || *c.Visible
}

// CategoryPatch is the partial-update payload for a category. Only fields
// present in the payload are merged; everything else on the stored document
// is left untouched. An explicit empty ParentCategory detaches the category
// from its parent.
type CategoryPatch struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description    *string `json:"description,omitempty"`
	Order          *int    `json:"order,omitempty"`
	Visible        *bool   `json:"visible,omitempty"`
	TimeRestricted *bool   `json:"timeRestricted,omitempty"`
	StartTime      *string `json:"startTime,omitempty"`
	EndTime        *string `json:"endTime,omitempty"`
	IsSubcategory  *bool   `json:"isSubcategory,omitempty"`
	ParentCategory *string `json:"parentCategory,omitempty"`
}
