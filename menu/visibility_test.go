package menu

import (
	"testing"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/models"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func cat(id string, visible bool, parent string) models.Category {
	return models.Category{
		CategoryID:     id,
		Name:           id,
		Visible:        boolPtr(visible),
		ParentCategory: parent,
		IsSubcategory:  parent != "",
	}
}

func TestIsCategoryVisible_ExplicitOverride(t *testing.T) {
	r := NewResolver([]models.Category{cat("tapas", false, "")}, nil)
	assert.False(t, r.IsCategoryVisible("tapas"))

	r = NewResolver([]models.Category{cat("tapas", true, "")}, nil)
	assert.True(t, r.IsCategoryVisible("tapas"))
}

func TestIsCategoryVisible_UnknownFailsOpen(t *testing.T) {
	r := NewResolver(nil, nil)
	assert.True(t, r.IsCategoryVisible("not-migrated-yet"))
}

func TestIsCategoryVisible_MissingFlagDefaultsVisible(t *testing.T) {
	// Legacy documents may not carry the visible field at all.
	r := NewResolver([]models.Category{{CategoryID: "postres", Name: "postres"}}, nil)
	assert.True(t, r.IsCategoryVisible("postres"))
}

func TestIsCategoryVisible_ParentChainInheritance(t *testing.T) {
	categories := []models.Category{
		cat("vinos", false, ""),
		cat("vinos-tintos", true, "vinos"),
		cat("vinos-blancos", true, "vinos-tintos"),
	}
	r := NewResolver(categories, nil)

	// Hiding a parent hides every descendant regardless of their own flags.
	assert.False(t, r.IsCategoryVisible("vinos-tintos"))
	assert.False(t, r.IsCategoryVisible("vinos-blancos"))
}

func TestIsCategoryVisible_SelfParentIgnored(t *testing.T) {
	r := NewResolver([]models.Category{cat("menu", true, "menu")}, nil)
	assert.True(t, r.IsCategoryVisible("menu"))
}

func TestIsCategoryVisible_CycleTerminatesFailOpen(t *testing.T) {
	categories := []models.Category{
		cat("a", true, "b"),
		cat("b", true, "a"),
	}
	r := NewResolver(categories, nil)

	// Malformed chain: the walk must terminate and degrade to visible.
	assert.True(t, r.IsCategoryVisible("a"))
	assert.True(t, r.IsCategoryVisible("b"))
}

func TestIsCategoryVisible_TimeRestriction(t *testing.T) {
	nightly := models.Category{
		CategoryID:     "cenas",
		Name:           "cenas",
		Visible:        boolPtr(true),
		TimeRestricted: true,
		StartTime:      "20:00",
		EndTime:        "23:30",
	}

	at := func(hh, mm int) func() time.Time {
		return func() time.Time { return clock(hh, mm) }
	}

	assert.True(t, NewResolver([]models.Category{nightly}, at(21, 0)).IsCategoryVisible("cenas"))
	assert.False(t, NewResolver([]models.Category{nightly}, at(12, 0)).IsCategoryVisible("cenas"))
}

func TestIsCategoryVisible_TimeRestrictedParentHidesChildren(t *testing.T) {
	categories := []models.Category{
		{
			CategoryID:     "barra",
			Name:           "barra",
			Visible:        boolPtr(true),
			TimeRestricted: true,
			StartTime:      "18:00",
			EndTime:        "02:00",
		},
		cat("barra-cocteles", true, "barra"),
	}

	noon := func() time.Time { return clock(12, 0) }
	evening := func() time.Time { return clock(23, 0) }

	assert.False(t, NewResolver(categories, noon).IsCategoryVisible("barra-cocteles"))
	assert.True(t, NewResolver(categories, evening).IsCategoryVisible("barra-cocteles"))
}

func TestWouldCycle(t *testing.T) {
	categories := []models.Category{
		cat("vinos", true, ""),
		cat("vinos-tintos", true, "vinos"),
		cat("vinos-reserva", true, "vinos-tintos"),
	}

	assert.True(t, WouldCycle(categories, "vinos", "vinos"))
	assert.True(t, WouldCycle(categories, "vinos", "vinos-reserva"))
	assert.True(t, WouldCycle(categories, "vinos", "vinos-tintos"))
	assert.False(t, WouldCycle(categories, "vinos-reserva", "vinos"))
	assert.False(t, WouldCycle(categories, "vinos-tintos", "unknown-parent"))
}
