package menu

import (
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

// ValidateCategoryPatch rejects a malformed category merge payload before any
// write. Supplied time-window strings must parse as HH:MM; the evaluator
// itself never re-validates them.
func ValidateCategoryPatch(p models.CategoryPatch) error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if p.StartTime != nil && *p.StartTime != "" {
		if _, err := ParseClock(*p.StartTime); err != nil {
			return err
		}
	}
	if p.EndTime != nil && *p.EndTime != "" {
		if _, err := ParseClock(*p.EndTime); err != nil {
			return err
		}
	}
	return nil
}

// BuildCategoryUpdate translates a category patch into its field-enumerated
// merge document. Fields absent from the patch never appear in $set, so a
// partial payload cannot reset visibility or the time window. An explicit
// empty parentCategory detaches the category.
func BuildCategoryUpdate(p models.CategoryPatch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Order != nil {
		set["order"] = *p.Order
	}
	if p.Visible != nil {
		set["visible"] = *p.Visible
	}
	if p.TimeRestricted != nil {
		set["timeRestricted"] = *p.TimeRestricted
	}
	if p.StartTime != nil {
		set["startTime"] = *p.StartTime
	}
	if p.EndTime != nil {
		set["endTime"] = *p.EndTime
	}
	if p.IsSubcategory != nil {
		set["isSubcategory"] = *p.IsSubcategory
	}
	if p.ParentCategory != nil {
		if *p.ParentCategory == "" {
			unset["parentCategory"] = ""
		} else {
			set["parentCategory"] = *p.ParentCategory
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}
