package menu

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/models"
	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var validate = validator.New()

// SyncTarget pins every item of a section sync to one category/section pair.
// Empty fields mean "take it from the item payload instead".
type SyncTarget struct {
	CategoryID string
	Section    string
}

// ItemResult is the per-item acknowledgement of a sync batch. Batches are not
// transactional across documents: each item succeeds or fails on its own.
type ItemResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

const (
	StatusSynced  = "synced"
	StatusInvalid = "invalid"
	StatusFailed  = "failed"
)

// ValidateProductPatch rejects a malformed item before any write is attempted
// for it. Price may be a string or a number, nothing else.
func ValidateProductPatch(p models.ProductPatch) error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	switch p.Price.(type) {
	case nil, string, float64, int, int64, json.Number:
		return nil
	default:
		return fmt.Errorf("price must be a string or a number, got %T", p.Price)
	}
}

// BuildProductUpsert translates one patch into the mongo upsert for that
// item. The merge is field-enumerated: only fields present in the patch land
// in $set, so an existing document keeps everything the payload did not
// mention — notably hidden and deletedAt. hiddenReason/hiddenBy are written
// only when the same operation hides the item, and unhiding clears the trio.
// Brand-new documents get id/createdAt and, when the patch omits order, a
// default order from their position in the batch via $setOnInsert, which by
// construction cannot collide with a $set of the same field.
func BuildProductUpsert(p models.ProductPatch, target SyncTarget, position int, now time.Time) (filter, update bson.M) {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = p.Price
	}
	if p.Tags != nil {
		set["tags"] = p.Tags
	}
	if p.Order != nil {
		set["order"] = *p.Order
	}

	switch {
	case target.CategoryID != "":
		set["categoryId"] = target.CategoryID
	case p.CategoryID != nil:
		set["categoryId"] = *p.CategoryID
	}
	switch {
	case target.Section != "":
		set["section"] = target.Section
	case p.Section != nil:
		set["section"] = *p.Section
	}

	if p.Hidden != nil {
		set["hidden"] = *p.Hidden
		if *p.Hidden {
			if p.HiddenReason != nil {
				set["hiddenReason"] = *p.HiddenReason
			}
			if p.HiddenBy != nil {
				set["hiddenBy"] = *p.HiddenBy
			}
			set["hiddenAt"] = now
		} else {
			unset["hiddenReason"] = ""
			unset["hiddenBy"] = ""
			unset["hiddenAt"] = ""
		}
	}

	setOnInsert := bson.M{
		"id":        p.ProductID,
		"createdAt": now,
	}
	if p.Hidden == nil {
		setOnInsert["hidden"] = false
	}
	if p.Order == nil {
		setOnInsert["order"] = position
	}

	update = bson.M{"$set": set, "$setOnInsert": setOnInsert}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return bson.M{"id": p.ProductID}, update
}

// BuildSectionModels validates a batch and produces the unordered bulk-write
// models for the items that passed. results is index-aligned with items;
// modelIndex maps each write model back to its item so per-item store errors
// can be attributed after the BulkWrite.
func BuildSectionModels(items []models.ProductPatch, target SyncTarget, now time.Time) (writes []mongo.WriteModel, modelIndex []int, results []ItemResult) {
	results = make([]ItemResult, len(items))
	for i, item := range items {
		results[i] = ItemResult{ID: item.ProductID, Status: StatusSynced}
		if err := ValidateProductPatch(item); err != nil {
			results[i].Status = StatusInvalid
			results[i].Error = err.Error()
			continue
		}
		filter, update := BuildProductUpsert(item, target, i, now)
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(filter).
			SetUpdate(update).
			SetUpsert(true))
		modelIndex = append(modelIndex, i)
	}
	return writes, modelIndex, results
}
