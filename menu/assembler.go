package menu

import (
	"sort"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/models"
)

// Mode selects who the assembled menu is for. Admin sees everything it
// manages, including hidden and out-of-window entries; public gets the
// resolver applied to every category.
type Mode string

const (
	ModeAdmin  Mode = "admin"
	ModePublic Mode = "public"
)

// rootSection is the legacy section value that means "no compound grouping".
const rootSection = "menu"

// Options control one assembly pass.
type Options struct {
	Mode           Mode
	IncludeDeleted bool
	// Now is the clock used for time-restricted categories; nil means time.Now.
	Now func() time.Time
}

// FlatCategory is the canonical grouping: every product keyed under its
// categoryId at the document root.
type FlatCategory struct {
	CategoryID string
	Items      []models.Product
}

// CompoundSection is the backward-compatible nested view for products whose
// legacy section differs from their categoryId (wine lists and the like).
// It duplicates FlatCategory content; it is never a separate source of truth.
type CompoundSection struct {
	Section string
	Groups  []FlatCategory
}

// Tree is the canonical tagged form of an assembled menu. It is serialized
// to the legacy dual-shape document only at the boundary, via Document.
type Tree struct {
	Flat     []FlatCategory
	Compound []CompoundSection
}

// Assemble reconstructs the nested menu from flat store snapshots. Products
// are grouped by categoryId in stored order (order ascending, ties kept in
// input order); soft-deleted products are excluded unless IncludeDeleted; in
// public mode both the category resolver and the per-item hidden flag apply.
func Assemble(products []models.Product, categories []models.Category, opts Options) *Tree {
	resolver := NewResolver(categories, opts.Now)

	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})

	categoryVisible := make(map[string]bool)
	visible := func(id string) bool {
		v, ok := categoryVisible[id]
		if !ok {
			v = resolver.IsCategoryVisible(id)
			categoryVisible[id] = v
		}
		return v
	}

	tree := &Tree{}
	flatIdx := make(map[string]int)
	compoundIdx := make(map[string]int)

	for _, p := range sorted {
		if p.Deleted() && !opts.IncludeDeleted {
			continue
		}
		if opts.Mode == ModePublic {
			if p.Hidden || !visible(p.CategoryID) {
				continue
			}
		}

		i, ok := flatIdx[p.CategoryID]
		if !ok {
			i = len(tree.Flat)
			flatIdx[p.CategoryID] = i
			tree.Flat = append(tree.Flat, FlatCategory{CategoryID: p.CategoryID})
		}
		tree.Flat[i].Items = append(tree.Flat[i].Items, p)

		mirrored := p.Section != "" && p.Section != p.CategoryID && p.Section != rootSection
		// A section name may itself be a category id (wine lists grouped
		// under a "vinos" category); the public mirror honors that
		// category's visibility even when its groups carry no parent link.
		if mirrored && opts.Mode == ModePublic && !visible(p.Section) {
			mirrored = false
		}
		if mirrored {
			s, ok := compoundIdx[p.Section]
			if !ok {
				s = len(tree.Compound)
				compoundIdx[p.Section] = s
				tree.Compound = append(tree.Compound, CompoundSection{Section: p.Section})
			}
			sec := &tree.Compound[s]
			gi := -1
			for idx := range sec.Groups {
				if sec.Groups[idx].CategoryID == p.CategoryID {
					gi = idx
					break
				}
			}
			if gi < 0 {
				sec.Groups = append(sec.Groups, FlatCategory{CategoryID: p.CategoryID})
				gi = len(sec.Groups) - 1
			}
			sec.Groups[gi].Items = append(sec.Groups[gi].Items, p)
		}
	}

	return tree
}

// Document serializes the tree to the legacy dual shape: an array of products
// under every categoryId at the root, plus a nested object per compound
// section mirroring its groups. When a section name collides with a real
// category id the canonical flat array wins and the mirror is dropped.
func (t *Tree) Document() map[string]any {
	doc := make(map[string]any, len(t.Flat)+len(t.Compound))
	for _, fc := range t.Flat {
		doc[fc.CategoryID] = fc.Items
	}
	for _, sec := range t.Compound {
		if _, taken := doc[sec.Section]; taken {
			continue
		}
		nested := make(map[string][]models.Product, len(sec.Groups))
		for _, g := range sec.Groups {
			nested[g.CategoryID] = g.Items
		}
		doc[sec.Section] = nested
	}
	return doc
}
