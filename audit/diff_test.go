package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/MateAKD/Carta_Menu_Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func changedFields(changes []models.FieldChange) []string {
	fields := make([]string, 0, len(changes))
	for _, c := range changes {
		fields = append(fields, c.Field)
	}
	return fields
}

func TestProductDiff_TrackedFieldsOnly(t *testing.T) {
	old := models.Product{
		ProductID:   "bravas",
		Name:        "Bravas",
		Description: "con alioli",
		Price:       "7.50",
		CategoryID:  "tapas",
		Section:     "tapas",
		Order:       3,
	}
	updated := old
	updated.Name = "Patatas bravas"
	updated.Price = "8.00"
	updated.Hidden = true
	updated.Order = 9 // order is not a tracked field

	changes := ProductDiff(old, updated)
	assert.ElementsMatch(t, []string{"name", "price", "hidden"}, changedFields(changes))

	for _, c := range changes {
		if c.Field == "name" {
			assert.Equal(t, "Bravas", c.OldValue)
			assert.Equal(t, "Patatas bravas", c.NewValue)
		}
	}
}

// Visibility toggles audit through the same field diff as every other
// update; a hidden flip must surface as exactly one tracked change.
func TestProductDiff_VisibilityToggle(t *testing.T) {
	old := models.Product{
		ProductID:  "bravas",
		Name:       "Bravas",
		Price:      "7.50",
		CategoryID: "tapas",
		Section:    "tapas",
	}
	updated := old
	updated.Hidden = true

	changes := ProductDiff(old, updated)
	require.Len(t, changes, 1)
	assert.Equal(t, "hidden", changes[0].Field)
	assert.Equal(t, false, changes[0].OldValue)
	assert.Equal(t, true, changes[0].NewValue)

	assert.Empty(t, ProductDiff(updated, updated))
}

func TestProductDiff_NoChanges(t *testing.T) {
	p := models.Product{ProductID: "bravas", Name: "Bravas", Price: "7.50"}
	assert.Empty(t, ProductDiff(p, p))
}

func TestPatchChanges_NewDocument(t *testing.T) {
	name := "Bravas"
	patch := models.ProductPatch{ProductID: "bravas", Name: &name, Price: "7.50"}

	changes := PatchChanges(nil, patch, "tapas", "tapas")
	assert.ElementsMatch(t, []string{"name", "price", "categoryId", "section"}, changedFields(changes))
}

func TestPatchChanges_OmittedFieldsAreNotChanges(t *testing.T) {
	old := models.Product{ProductID: "bravas", Name: "Bravas", Price: "7.50", Hidden: true,
		CategoryID: "tapas", Section: "tapas"}

	price := "8.00"
	patch := models.ProductPatch{ProductID: "bravas", Price: price}

	changes := PatchChanges(&old, patch, "tapas", "tapas")
	require.Len(t, changes, 1)
	assert.Equal(t, "price", changes[0].Field)
	assert.Equal(t, "7.50", changes[0].OldValue)
	assert.Equal(t, "8.00", changes[0].NewValue)
}

type failingRecorder struct{ calls int }

func (f *failingRecorder) Record(ctx context.Context, rec models.AuditRecord) error {
	f.calls++
	return errors.New("audit store unavailable")
}

// Audit is best-effort: a recorder failure is swallowed with a warning and
// must never unwind the mutation that triggered it.
func TestSubmit_FailureDoesNotPropagate(t *testing.T) {
	rec := &failingRecorder{}

	assert.NotPanics(t, func() {
		Submit(context.Background(), rec, models.AuditRecord{
			EntityType: models.EntityProduct,
			EntityID:   "bravas",
			Action:     models.ActionUpdate,
			Actor:      "ana",
		})
	})
	assert.Equal(t, 1, rec.calls)
}

func TestSubmit_NilRecorderIsDisabled(t *testing.T) {
	assert.NotPanics(t, func() {
		Submit(context.Background(), nil, models.AuditRecord{})
	})
}
