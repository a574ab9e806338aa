// Package audit is the change-log port for product mutations. Recording is
// best-effort: a failed audit write is a warning, never an error the caller
// sees, and never rolls back the mutation it describes.
package audit

import (
	"context"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/logger"
	"github.com/MateAKD/Carta_Menu_Backend/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Recorder appends audit records. The core calls it after a successful
// mutation through Submit, never directly.
type Recorder interface {
	Record(ctx context.Context, rec models.AuditRecord) error
}

// MongoRecorder writes audit records to a collection.
type MongoRecorder struct {
	col *mongo.Collection
}

func NewMongoRecorder(col *mongo.Collection) *MongoRecorder {
	return &MongoRecorder{col: col}
}

func (r *MongoRecorder) Record(ctx context.Context, rec models.AuditRecord) error {
	if rec.AuditID == "" {
		rec.AuditID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	_, err := r.col.InsertOne(ctx, rec)
	return err
}

// Submit records an entry and swallows any failure with a warning. A nil
// recorder disables auditing entirely.
func Submit(ctx context.Context, r Recorder, rec models.AuditRecord) {
	if r == nil {
		return
	}
	if err := r.Record(ctx, rec); err != nil {
		logger.L().Warn("audit record failed",
			zap.String("entityType", rec.EntityType),
			zap.String("entityId", rec.EntityID),
			zap.String("action", rec.Action),
			zap.Error(err))
	}
}
