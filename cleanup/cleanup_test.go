package cleanup

import (
	"testing"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func deletedProduct(id string, daysAgo int) models.Product {
	deletedAt := now.AddDate(0, 0, -daysAgo)
	return models.Product{ProductID: id, Name: id, DeletedAt: &deletedAt}
}

func TestClampRetention(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"unspecified falls back to default", 0, DefaultRetentionDays},
		{"negative falls back to default", -5, DefaultRetentionDays},
		{"minimum allowed", 1, 1},
		{"in range passes through", 30, 30},
		{"maximum allowed", 365, 365},
		{"above maximum clamps", 400, 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampRetention(tt.in))
		})
	}
}

func TestIsCandidate_RetentionBoundary(t *testing.T) {
	retention := 90
	cutoff := Cutoff(retention, now)

	tooYoung := deletedProduct("young", retention-1)
	assert.False(t, IsCandidate(tooYoung, cutoff),
		"deleted retention-1 days ago must survive")

	oldEnough := deletedProduct("old", retention+1)
	assert.True(t, IsCandidate(oldEnough, cutoff),
		"deleted retention+1 days ago must be collected")

	exactly := deletedProduct("exact", retention)
	assert.True(t, IsCandidate(exactly, cutoff))

	alive := models.Product{ProductID: "alive", Name: "alive"}
	assert.False(t, IsCandidate(alive, cutoff), "live products are never candidates")
}

func TestCandidateFilter_MatchesOnlyRealTimestamps(t *testing.T) {
	cutoff := Cutoff(90, now)
	filter := CandidateFilter(cutoff)

	inner, ok := filter["deletedAt"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "date", inner["$type"], "documents without the marker must not match")
	assert.Equal(t, cutoff, inner["$lte"])
}

func TestNewCandidate(t *testing.T) {
	p := deletedProduct("gone", 100)
	p.DeletedBy = "ana"

	c := NewCandidate(p)
	assert.Equal(t, "gone", c.ID)
	assert.Equal(t, "ana", c.DeletedBy)
	assert.Equal(t, *p.DeletedAt, c.DeletedAt)
}
