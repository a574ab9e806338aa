// Package cleanup holds the retention policy for soft-deleted products: how
// long a deleted product is kept before the garbage collector may remove it
// permanently, and which documents are candidates at a given moment.
package cleanup

import (
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultRetentionDays = 90
	MinRetentionDays     = 1
	MaxRetentionDays     = 365
)

// ClampRetention bounds a requested retention window to [1, 365] days.
// Zero or negative means "unspecified" and falls back to the default.
func ClampRetention(days int) int {
	switch {
	case days <= 0:
		return DefaultRetentionDays
	case days < MinRetentionDays:
		return MinRetentionDays
	case days > MaxRetentionDays:
		return MaxRetentionDays
	default:
		return days
	}
}

// Cutoff is the moment before which a soft-delete is old enough to reap.
func Cutoff(retentionDays int, now time.Time) time.Time {
	return now.AddDate(0, 0, -retentionDays)
}

// CandidateFilter selects products whose deletedAt is a real timestamp at or
// before the cutoff. Documents without the marker never match.
func CandidateFilter(cutoff time.Time) bson.M {
	return bson.M{"deletedAt": bson.M{"$type": "date", "$lte": cutoff}}
}

// IsCandidate is the in-memory equivalent of CandidateFilter.
func IsCandidate(p models.Product, cutoff time.Time) bool {
	return p.DeletedAt != nil && !p.DeletedAt.After(cutoff)
}

// Candidate identifies one product the garbage collector removed or would
// remove.
type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	DeletedAt time.Time `json:"deletedAt"`
	DeletedBy string    `json:"deletedBy,omitempty"`
}

// Report is the outcome of one collection pass, dry-run or not.
type Report struct {
	DryRun        bool        `json:"dryRun"`
	RetentionDays int         `json:"retentionDays"`
	Cutoff        time.Time   `json:"cutoff"`
	Count         int         `json:"count"`
	Candidates    []Candidate `json:"candidates"`
}

// NewCandidate projects a product into its report identity.
func NewCandidate(p models.Product) Candidate {
	c := Candidate{ID: p.ProductID, Name: p.Name, DeletedBy: p.DeletedBy}
	if p.DeletedAt != nil {
		c.DeletedAt = *p.DeletedAt
	}
	return c
}
