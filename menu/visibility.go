package menu

import (
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/models"
)

// Resolver answers effective-visibility questions over one snapshot of the
// category store. Build it once per request; it never mutates what it reads.
type Resolver struct {
	categories map[string]models.Category
	now        func() time.Time
}

// NewResolver indexes the category snapshot by id. A nil now defaults to
// time.Now; tests inject a fixed clock.
func NewResolver(categories []models.Category, now func() time.Time) *Resolver {
	if now == nil {
		now = time.Now
	}
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		if _, ok := byID[c.CategoryID]; ok {
			continue // first-seen wins, duplicates are a diagnostics finding
		}
		byID[c.CategoryID] = c
	}
	return &Resolver{categories: byID, now: now}
}

// IsCategoryVisible resolves effective visibility for a category:
// unknown ids are visible (fail-open for data without metadata), an explicit
// visible=false short-circuits, an out-of-window time restriction hides, and
// a hidden ancestor hides every descendant regardless of its own flags.
func (r *Resolver) IsCategoryVisible(id string) bool {
	return r.visible(id, make(map[string]struct{}))
}

func (r *Resolver) visible(id string, seen map[string]struct{}) bool {
	if _, ok := seen[id]; ok {
		// Malformed parent chain. Stop walking and fail open rather than
		// dropping a subtree over broken metadata.
		return true
	}
	seen[id] = struct{}{}

	cat, ok := r.categories[id]
	if !ok {
		return true
	}
	if !cat.IsVisible() {
		return false
	}
	if cat.TimeRestricted && cat.StartTime != "" && cat.EndTime != "" {
		if !IsWithinRange(cat.StartTime, cat.EndTime, r.now()) {
			return false
		}
	}
	if cat.ParentCategory != "" && cat.ParentCategory != cat.CategoryID {
		return r.visible(cat.ParentCategory, seen)
	}
	return true
}

// WouldCycle reports whether setting parent as the parent of id would close a
// loop in the parentCategory graph. Used by the subcategory mapping surface
// to refuse the write up front.
func WouldCycle(categories []models.Category, id, parent string) bool {
	if id == parent {
		return true
	}
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.CategoryID] = c
	}

	seen := map[string]struct{}{id: {}}
	for cur := parent; cur != ""; {
		if _, ok := seen[cur]; ok {
			return true
		}
		seen[cur] = struct{}{}
		cat, ok := byID[cur]
		if !ok || cat.ParentCategory == cur {
			return false
		}
		cur = cat.ParentCategory
	}
	return false
}
