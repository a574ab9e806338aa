package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/audit"
	"github.com/MateAKD/Carta_Menu_Backend/cleanup"
	"github.com/MateAKD/Carta_Menu_Backend/helper"
	"github.com/MateAKD/Carta_Menu_Backend/menu"
	middleware "github.com/MateAKD/Carta_Menu_Backend/middlewares"
	"github.com/MateAKD/Carta_Menu_Backend/models"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
)

type childView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
}

type subcategoryGroup struct {
	ParentID   string      `json:"parentId"`
	ParentName string      `json:"parentName"`
	Children   []childView `json:"children"`
}

// GetSubcategories serves GET /admin/subcategories: the combined mapping,
// hierarchy and order view over the parentCategory relationship.
func GetSubcategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categories, err := fetchCategories(ctx)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error occurred while listing categories", err)
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Subcategory mapping retrieved successfully",
		buildSubcategoryGroups(categories))
}

func buildSubcategoryGroups(categories []models.Category) []subcategoryGroup {
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.CategoryID] = c.Name
	}

	byParent := make(map[string][]childView)
	var parents []string
	for _, c := range categories {
		if !c.IsSubcategory || c.ParentCategory == "" {
			continue
		}
		if _, ok := byParent[c.ParentCategory]; !ok {
			parents = append(parents, c.ParentCategory)
		}
		byParent[c.ParentCategory] = append(byParent[c.ParentCategory], childView{
			ID:      c.CategoryID,
			Name:    c.Name,
			Order:   c.Order,
			Visible: c.IsVisible(),
		})
	}

	sort.Strings(parents)
	groups := make([]subcategoryGroup, 0, len(parents))
	for _, parent := range parents {
		children := byParent[parent]
		sort.SliceStable(children, func(i, j int) bool {
			return children[i].Order < children[j].Order
		})
		groups = append(groups, subcategoryGroup{
			ParentID:   parent,
			ParentName: names[parent],
			Children:   children,
		})
	}
	return groups
}

type attachPayload struct {
	ID             string `json:"id"`
	ParentCategory string `json:"parentCategory"`
	Order          *int   `json:"order,omitempty"`
}

// AttachSubcategory serves POST /admin/subcategories: makes one category a
// subcategory of another. Both must exist and the new edge may not close a
// cycle in the parent chain.
func AttachSubcategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var payload attachPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if payload.ID == "" || payload.ParentCategory == "" {
		helper.RespondError(w, http.StatusBadRequest, "id and parentCategory are required", nil)
		return
	}
	if payload.ID == payload.ParentCategory {
		helper.RespondError(w, http.StatusBadRequest, "a category cannot be its own parent", nil)
		return
	}

	categories, err := fetchCategories(ctx)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error occurred while listing categories", err)
		return
	}
	if !categoryExists(categories, payload.ID) || !categoryExists(categories, payload.ParentCategory) {
		helper.RespondError(w, http.StatusNotFound, "Category not found", nil)
		return
	}
	if menu.WouldCycle(categories, payload.ID, payload.ParentCategory) {
		helper.RespondError(w, http.StatusBadRequest, "parentCategory would create a cycle", nil)
		return
	}

	set := bson.M{
		"isSubcategory":  true,
		"parentCategory": payload.ParentCategory,
		"updatedAt":      time.Now(),
	}
	if payload.Order != nil {
		set["order"] = *payload.Order
	}

	if _, err := categoryCollection().UpdateOne(ctx, bson.M{"id": payload.ID}, bson.M{"$set": set}); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Subcategory mapping failed", err)
		return
	}

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Subcategory attached", nil)
}

// DetachSubcategory serves DELETE /admin/subcategories/{category_id}: the
// non-destructive common path — the category stays, only the hierarchy edge
// goes.
func DetachSubcategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categoryID := mux.Vars(r)["category_id"]

	result, err := categoryCollection().UpdateOne(ctx,
		bson.M{"id": categoryID},
		bson.M{
			"$set":   bson.M{"isSubcategory": false, "updatedAt": time.Now()},
			"$unset": bson.M{"parentCategory": ""},
		})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Subcategory detach failed", err)
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Subcategory detached", nil)
}

type cleanupPayload struct {
	RetentionDays int  `json:"retentionDays"`
	DryRun        bool `json:"dryRun"`
}

// RunCleanup performs one garbage-collection pass over soft-deleted products.
// Shared by the HTTP surface and the background reaper.
func RunCleanup(ctx context.Context, retentionDays int, dryRun bool, actor string) (cleanup.Report, error) {
	days := cleanup.ClampRetention(retentionDays)
	cutoff := cleanup.Cutoff(days, time.Now())

	candidates, err := fetchProducts(ctx, cleanup.CandidateFilter(cutoff))
	if err != nil {
		return cleanup.Report{}, err
	}

	report := cleanup.Report{
		DryRun:        dryRun,
		RetentionDays: days,
		Cutoff:        cutoff,
		Count:         len(candidates),
		Candidates:    make([]cleanup.Candidate, 0, len(candidates)),
	}
	for _, p := range candidates {
		report.Candidates = append(report.Candidates, cleanup.NewCandidate(p))
	}

	if dryRun || len(candidates) == 0 {
		return report, nil
	}

	if _, err := productCollection().DeleteMany(ctx, cleanup.CandidateFilter(cutoff)); err != nil {
		return cleanup.Report{}, err
	}

	for _, p := range candidates {
		audit.Submit(ctx, auditLog(), models.AuditRecord{
			EntityType: models.EntityProduct,
			EntityID:   p.ProductID,
			Action:     models.ActionCleanup,
			Actor:      actor,
			Timestamp:  time.Now(),
		})
	}
	return report, nil
}

// CleanupDeleted serves POST /admin/cleanup-deleted.
func CleanupDeleted(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var payload cleanupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	report, err := RunCleanup(ctx, payload.RetentionDays, payload.DryRun, middleware.Actor(r))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Cleanup failed", err)
		return
	}

	message := "Cleanup complete"
	if report.DryRun {
		message = "Cleanup dry run complete"
	}
	helper.RespondSuccess(w, http.StatusOK, message, report)
}

// CleanupCandidates serves GET /admin/cleanup-deleted: a dry-run view with
// the configured default retention.
func CleanupCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := RunCleanup(ctx, 0, true, middleware.Actor(r))
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Cleanup candidate scan failed", err)
		return
	}

	helper.RespondSuccess(w, http.StatusOK, "Cleanup candidates retrieved", report)
}

// GetDiagnostics serves GET /admin/diagnostics: the consistency scan for
// orphaned products and duplicated ids. Findings, not failures.
func GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	products, err := fetchProducts(ctx, bson.M{})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error occurred while scanning products", err)
		return
	}
	categories, err := fetchCategories(ctx)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error occurred while scanning categories", err)
		return
	}

	findings := menu.Scan(products, categories)
	helper.RespondSuccess(w, http.StatusOK, "Diagnostics complete", map[string]any{
		"orphanCount":    len(findings.Orphans),
		"duplicateCount": len(findings.Duplicates),
		"findings":       findings,
	})
}

// RemediateDuplicates serves POST /admin/diagnostics/remediate: for every
// duplicated product id, keeps the first-seen document and discards the rest.
// Orphans are report-only and untouched here.
func RemediateDuplicates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	products, err := fetchProducts(ctx, bson.M{})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error occurred while scanning products", err)
		return
	}

	surplus := menu.DuplicateSurplus(products)
	if len(surplus) == 0 {
		helper.RespondSuccess(w, http.StatusOK, "No duplicates found", map[string]any{"removed": 0})
		return
	}

	result, err := productCollection().DeleteMany(ctx, bson.M{"_id": bson.M{"$in": surplus}})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Duplicate remediation failed", err)
		return
	}

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Duplicates removed", map[string]any{
		"removed": result.DeletedCount,
	})
}
