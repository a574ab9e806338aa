package audit

import (
	"reflect"

	"github.com/MateAKD/Carta_Menu_Backend/models"
)

// Tracked fields per the audit contract: price, name, description, hidden,
// categoryId, section. Everything else mutates silently.

// ProductDiff compares two product states field by field over the tracked
// set.
func ProductDiff(old, updated models.Product) []models.FieldChange {
	var changes []models.FieldChange
	add := func(field string, ov, nv any) {
		if !reflect.DeepEqual(ov, nv) {
			changes = append(changes, models.FieldChange{Field: field, OldValue: ov, NewValue: nv})
		}
	}
	add("price", old.Price, updated.Price)
	add("name", old.Name, updated.Name)
	add("description", old.Description, updated.Description)
	add("hidden", old.Hidden, updated.Hidden)
	add("categoryId", old.CategoryID, updated.CategoryID)
	add("section", old.Section, updated.Section)
	return changes
}

// PatchChanges derives tracked-field changes from a sync patch against the
// previously stored state. old is nil for a brand-new document, in which case
// every supplied tracked field is a change from nothing. categoryID/section
// are the effective target values after the sync (which may come from the
// section target rather than the patch itself); empty means untargeted.
func PatchChanges(old *models.Product, p models.ProductPatch, categoryID, section string) []models.FieldChange {
	var changes []models.FieldChange
	add := func(field string, ov, nv any) {
		if !reflect.DeepEqual(ov, nv) {
			changes = append(changes, models.FieldChange{Field: field, OldValue: ov, NewValue: nv})
		}
	}

	prev := models.Product{}
	if old != nil {
		prev = *old
	}

	if p.Price != nil {
		add("price", prev.Price, p.Price)
	}
	if p.Name != nil {
		add("name", prev.Name, *p.Name)
	}
	if p.Description != nil {
		add("description", prev.Description, *p.Description)
	}
	if p.Hidden != nil {
		add("hidden", prev.Hidden, *p.Hidden)
	}
	if categoryID != "" {
		add("categoryId", prev.CategoryID, categoryID)
	} else if p.CategoryID != nil {
		add("categoryId", prev.CategoryID, *p.CategoryID)
	}
	if section != "" {
		add("section", prev.Section, section)
	} else if p.Section != nil {
		add("section", prev.Section, *p.Section)
	}
	return changes
}
