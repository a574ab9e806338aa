package menu

import (
	"github.com/MateAKD/Carta_Menu_Backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Findings is the result of a consistency scan over the two stores. Orphans
// and duplicate ids are findings, not errors: nothing in the read or write
// path ever fails because of them.
type Findings struct {
	// Orphans are products whose categoryId resolves to no category.
	Orphans []models.Product `json:"orphans"`
	// Duplicates maps a product id that occurs more than once to every
	// document carrying it, in store order.
	Duplicates map[string][]models.Product `json:"duplicates"`
}

// Scan detects orphaned products and duplicated product ids.
func Scan(products []models.Product, categories []models.Category) Findings {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c.CategoryID] = struct{}{}
	}

	byID := make(map[string][]models.Product)
	f := Findings{Duplicates: make(map[string][]models.Product)}
	for _, p := range products {
		if _, ok := known[p.CategoryID]; !ok {
			f.Orphans = append(f.Orphans, p)
		}
		byID[p.ProductID] = append(byID[p.ProductID], p)
	}
	for id, docs := range byID {
		if len(docs) > 1 {
			f.Duplicates[id] = docs
		}
	}
	return f
}

// DuplicateSurplus returns the _ids of every duplicate document past the
// first-seen one per product id. Remediation keeps the first-seen record and
// discards the rest.
func DuplicateSurplus(products []models.Product) []primitive.ObjectID {
	seen := make(map[string]struct{}, len(products))
	var surplus []primitive.ObjectID
	for _, p := range products {
		if _, ok := seen[p.ProductID]; ok {
			surplus = append(surplus, p.ID)
			continue
		}
		seen[p.ProductID] = struct{}{}
	}
	return surplus
}
