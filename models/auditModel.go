package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EntityProduct  = "product"
	EntityCategory = "category"

	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionCleanup = "cleanup"
)

// FieldChange records one tracked field transition inside an audit record.
type FieldChange struct {
	Field    string `bson:"field" json:"field"`
	OldValue any    `bson:"oldValue" json:"oldValue"`
	NewValue any    `bson:"newValue" json:"newValue"`
}

// AuditRecord is one entry in the change log. Audit writes are best-effort:
// a failed insert is logged and never rolls back the mutation it describes.
type AuditRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	AuditID    string             `bson:"id" json:"id"`
	EntityType string             `bson:"entityType" json:"entityType"`
	EntityID   string             `bson:"entityId" json:"entityId"`
	Action     string             `bson:"action" json:"action"`
	Changes    []FieldChange      `bson:"changes,omitempty" json:"changes,omitempty"`
	Actor      string             `bson:"actor" json:"actor"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}
