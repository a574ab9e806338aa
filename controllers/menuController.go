package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/audit"
	database "github.com/MateAKD/Carta_Menu_Backend/config"
	"github.com/MateAKD/Carta_Menu_Backend/helper"
	"github.com/MateAKD/Carta_Menu_Backend/logger"
	"github.com/MateAKD/Carta_Menu_Backend/menu"
	middleware "github.com/MateAKD/Carta_Menu_Backend/middlewares"
	"github.com/MateAKD/Carta_Menu_Backend/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	requestTimeout = 30 * time.Second
	menuCacheKey   = "menu:public"
)

// Collections are opened lazily so importing this package never dials the
// store; the first request does.
func productCollection() *mongo.Collection {
	return database.OpenCollection("products")
}

func categoryCollection() *mongo.Collection {
	return database.OpenCollection("categories")
}

func auditLog() audit.Recorder {
	return audit.NewMongoRecorder(database.OpenCollection("audit_log"))
}

func fetchCategories(ctx context.Context) ([]models.Category, error) {
	cursor, err := categoryCollection().Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func fetchProducts(ctx context.Context, filter bson.M) ([]models.Product, error) {
	cursor, err := productCollection().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// invalidateMenuCache drops the public menu snapshot after any write.
// Best-effort: a cache problem never fails the mutation.
func invalidateMenuCache(ctx context.Context) {
	cache := database.Cache()
	if cache == nil {
		return
	}
	if err := cache.Del(ctx, menuCacheKey).Err(); err != nil {
		logger.L().Warn("menu cache invalidation failed", zap.Error(err))
	}
}

// GetMenu serves GET /menu?admin=<bool>&includeDeleted=<bool>. The admin path
// requires a valid bearer token and is never cached; the public path is
// cached briefly in redis and marked for background revalidation.
func GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	admin := r.URL.Query().Get("admin") == "true"
	includeDeleted := r.URL.Query().Get("includeDeleted") == "true"

	if admin {
		tokenString, problem := helper.BearerToken(r)
		if problem == "" {
			_, problem = helper.ValidateToken(tokenString)
		}
		if problem != "" {
			helper.RespondError(w, http.StatusUnauthorized, problem, nil)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
	} else {
		ttl := int(database.Load().MenuCacheTTL.Seconds())
		w.Header().Set("Cache-Control",
			fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", ttl, ttl))

		if cache := database.Cache(); cache != nil {
			if cached, err := cache.Get(ctx, menuCacheKey).Bytes(); err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Write(cached)
				return
			}
		}
	}

	products, err := fetchProducts(ctx, bson.M{})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error occurred while listing the menu items", err)
		return
	}
	categories, err := fetchCategories(ctx)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error occurred while listing the menu categories", err)
		return
	}

	mode := menu.ModePublic
	if admin {
		mode = menu.ModeAdmin
	}
	tree := menu.Assemble(products, categories, menu.Options{
		Mode:           mode,
		IncludeDeleted: admin && includeDeleted,
	})

	envelope := map[string]any{
		"success": true,
		"message": "Menu retrieved successfully",
		"data":    tree.Document(),
	}

	if !admin {
		payload, err := json.Marshal(envelope)
		if err == nil {
			if cache := database.Cache(); cache != nil {
				if err := cache.Set(ctx, menuCacheKey, payload, database.Load().MenuCacheTTL).Err(); err != nil {
					logger.L().Warn("menu cache write failed", zap.Error(err))
				}
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write(payload)
			return
		}
	}

	helper.RespondJSON(w, http.StatusOK, envelope)
}

type sectionPayload struct {
	CategoryID string                `json:"categoryId"`
	Section    string                `json:"section"`
	Items      []models.ProductPatch `json:"items"`
}

type bulkMenuPayload struct {
	Sections []sectionPayload `json:"sections"`
}

type sectionResult struct {
	CategoryID string            `json:"categoryId"`
	Section    string            `json:"section"`
	Error      string            `json:"error,omitempty"`
	Items      []menu.ItemResult `json:"items"`
}

// SyncMenu serves POST /menu: bulk synchronization of an entire menu payload.
// Each section routes through the same field-safe upsert path as PUT; the ack
// reports every item individually because batches are not atomic across
// documents.
func SyncMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var payload bulkMenuPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(payload.Sections) == 0 {
		helper.RespondError(w, http.StatusBadRequest, "Payload contains no sections", nil)
		return
	}

	actor := middleware.Actor(r)
	results := make([]sectionResult, 0, len(payload.Sections))
	for _, sec := range payload.Sections {
		if sec.CategoryID == "" {
			// No target category means nothing in the section can be
			// routed; reject every item rather than acking silently.
			items := make([]menu.ItemResult, len(sec.Items))
			for i, item := range sec.Items {
				items[i] = menu.ItemResult{
					ID:     item.ProductID,
					Status: menu.StatusInvalid,
					Error:  "categoryId is required",
				}
			}
			results = append(results, sectionResult{
				Section: sec.Section,
				Error:   "categoryId is required",
				Items:   items,
			})
			continue
		}
		section := sec.Section
		if section == "" {
			section = sec.CategoryID
		}
		target := menu.SyncTarget{CategoryID: sec.CategoryID, Section: section}
		results = append(results, sectionResult{
			CategoryID: sec.CategoryID,
			Section:    section,
			Items:      syncSectionItems(ctx, actor, target, sec.Items),
		})
	}

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Menu synchronized", results)
}

type sectionSyncBody struct {
	Section string                `json:"section"`
	Items   []models.ProductPatch `json:"items"`
}

// SyncSection serves PUT /menu/{category_id}: sync of one category/section.
func SyncSection(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categoryID := mux.Vars(r)["category_id"]

	var body sectionSyncBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	section := body.Section
	if section == "" {
		section = categoryID
	}
	target := menu.SyncTarget{CategoryID: categoryID, Section: section}
	results := syncSectionItems(ctx, middleware.Actor(r), target, body.Items)

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Section synchronized", sectionResult{
		CategoryID: categoryID,
		Section:    section,
		Items:      results,
	})
}

// syncSectionItems validates, upserts and audits one batch. Items that fail
// validation are rejected before their write; store failures are attributed
// per item. There is no rollback across documents.
func syncSectionItems(ctx context.Context, actor string, target menu.SyncTarget, items []models.ProductPatch) []menu.ItemResult {
	now := time.Now()
	writes, modelIndex, results := menu.BuildSectionModels(items, target, now)
	if len(writes) == 0 {
		return results
	}

	ids := make([]string, 0, len(modelIndex))
	for _, i := range modelIndex {
		ids = append(ids, items[i].ProductID)
	}
	existing := make(map[string]models.Product, len(ids))
	if prior, err := fetchProducts(ctx, bson.M{"id": bson.M{"$in": ids}}); err != nil {
		logger.L().Warn("prior state fetch for audit failed", zap.Error(err))
	} else {
		for _, p := range prior {
			if _, ok := existing[p.ProductID]; !ok {
				existing[p.ProductID] = p
			}
		}
	}

	if _, err := productCollection().BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false)); err != nil {
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			for _, we := range bwe.WriteErrors {
				if we.Index < 0 || we.Index >= len(modelIndex) {
					continue
				}
				i := modelIndex[we.Index]
				results[i].Status = menu.StatusFailed
				if !database.Production() {
					results[i].Error = we.Message
				}
			}
		} else {
			for _, i := range modelIndex {
				results[i].Status = menu.StatusFailed
				if !database.Production() {
					results[i].Error = err.Error()
				}
			}
			return results
		}
	}

	for _, i := range modelIndex {
		if results[i].Status != menu.StatusSynced {
			continue
		}
		item := items[i]
		action := models.ActionCreate
		var old *models.Product
		if prev, ok := existing[item.ProductID]; ok {
			old = &prev
			action = models.ActionUpdate
		}
		audit.Submit(ctx, auditLog(), models.AuditRecord{
			EntityType: models.EntityProduct,
			EntityID:   item.ProductID,
			Action:     action,
			Changes:    audit.PatchChanges(old, item, target.CategoryID, target.Section),
			Actor:      actor,
			Timestamp:  now,
		})
	}
	return results
}

type visibilityPayload struct {
	Hidden   *bool  `json:"hidden"`
	Reason   string `json:"reason"`
	HiddenBy string `json:"hiddenBy"`
}

// UpdateItemVisibility serves PATCH /menu/{category_id}/{item_id}/visibility.
// hidden must be a literal boolean; reason and hiddenBy are required when
// hiding and cleared when unhiding.
func UpdateItemVisibility(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	params := mux.Vars(r)
	categoryID := params["category_id"]
	itemID := params["item_id"]

	var payload visibilityPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if payload.Hidden == nil {
		helper.RespondError(w, http.StatusBadRequest, "hidden is required and must be a boolean", nil)
		return
	}
	if *payload.Hidden && (payload.Reason == "" || payload.HiddenBy == "") {
		helper.RespondError(w, http.StatusBadRequest, "reason and hiddenBy are required when hiding an item", nil)
		return
	}

	filter := bson.M{"id": itemID, "categoryId": categoryID}
	var old models.Product
	if err := productCollection().FindOne(ctx, filter).Decode(&old); err != nil {
		helper.RespondError(w, http.StatusNotFound, "Item not found", nil)
		return
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{"hidden": *payload.Hidden, "updatedAt": now}}
	if *payload.Hidden {
		update["$set"].(bson.M)["hiddenReason"] = payload.Reason
		update["$set"].(bson.M)["hiddenBy"] = payload.HiddenBy
		update["$set"].(bson.M)["hiddenAt"] = now
	} else {
		update["$unset"] = bson.M{"hiddenReason": "", "hiddenBy": "", "hiddenAt": ""}
	}

	if _, err := productCollection().UpdateOne(ctx, filter, update); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Visibility update failed", err)
		return
	}

	updated := old
	updated.Hidden = *payload.Hidden
	audit.Submit(ctx, auditLog(), models.AuditRecord{
		EntityType: models.EntityProduct,
		EntityID:   itemID,
		Action:     models.ActionUpdate,
		Changes:    audit.ProductDiff(old, updated),
		Actor:      middleware.Actor(r),
		Timestamp:  now,
	})

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Item visibility updated", nil)
}

// SoftDeleteItem serves DELETE /menu/{category_id}/{item_id}: marks the item
// deleted without removing the document. Only the garbage collector removes
// it for real, after the retention window.
func SoftDeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	params := mux.Vars(r)
	categoryID := params["category_id"]
	itemID := params["item_id"]
	actor := middleware.Actor(r)

	filter := bson.M{"id": itemID, "categoryId": categoryID}
	var old models.Product
	if err := productCollection().FindOne(ctx, filter).Decode(&old); err != nil {
		helper.RespondError(w, http.StatusNotFound, "Item not found", nil)
		return
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{"deletedAt": now, "deletedBy": actor, "updatedAt": now}}
	if _, err := productCollection().UpdateOne(ctx, filter, update); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Item deletion failed", err)
		return
	}

	audit.Submit(ctx, auditLog(), models.AuditRecord{
		EntityType: models.EntityProduct,
		EntityID:   itemID,
		Action:     models.ActionDelete,
		Actor:      actor,
		Timestamp:  now,
	})

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Item deleted", nil)
}
