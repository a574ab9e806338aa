package menu

import (
	"testing"

	"github.com/MateAKD/Carta_Menu_Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScan_OrphanDetection(t *testing.T) {
	products := []models.Product{
		product("p1", "tapas", "tapas", 1),
		product("p2", "removed-category", "removed-category", 1),
	}
	categories := []models.Category{cat("tapas", true, "")}

	findings := Scan(products, categories)

	require.Len(t, findings.Orphans, 1)
	assert.Equal(t, "p2", findings.Orphans[0].ProductID)
	assert.Empty(t, findings.Duplicates)

	// Orphans are findings only: assembly still serves them (fail-open).
	doc := Assemble(products, categories, Options{Mode: ModePublic}).Document()
	_, ok := doc["removed-category"]
	assert.True(t, ok)
}

func TestScan_DuplicateIDs(t *testing.T) {
	products := []models.Product{
		product("dup", "tapas", "tapas", 1),
		product("p2", "tapas", "tapas", 2),
		product("dup", "postres", "postres", 1),
	}

	findings := Scan(products, []models.Category{cat("tapas", true, ""), cat("postres", true, "")})

	require.Len(t, findings.Duplicates, 1)
	assert.Len(t, findings.Duplicates["dup"], 2)
}

func TestDuplicateSurplus_KeepsFirstSeen(t *testing.T) {
	first := product("dup", "tapas", "tapas", 1)
	first.ID = primitive.NewObjectID()
	second := product("dup", "tapas", "tapas", 2)
	second.ID = primitive.NewObjectID()
	third := product("dup", "tapas", "tapas", 3)
	third.ID = primitive.NewObjectID()
	unique := product("solo", "tapas", "tapas", 4)
	unique.ID = primitive.NewObjectID()

	surplus := DuplicateSurplus([]models.Product{first, second, third, unique})

	require.Len(t, surplus, 2)
	assert.Equal(t, []primitive.ObjectID{second.ID, third.ID}, surplus)
}
