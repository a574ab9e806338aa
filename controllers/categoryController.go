package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/MateAKD/Carta_Menu_Backend/helper"
	"github.com/MateAKD/Carta_Menu_Backend/menu"
	"github.com/MateAKD/Carta_Menu_Backend/models"

	"github.com/go-playground/validator"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
)

var validate = validator.New()

// GetCategories serves GET /categories: the category metadata list, ordered
// by sibling sort key.
func GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categories, err := fetchCategories(ctx)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error occurred while listing categories", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}

	helper.RespondSuccess(w, http.StatusOK, "Categories retrieved successfully", categories)
}

// CreateCategory serves POST /categories. Create is POST-only; a duplicate id
// is a conflict, never a silent merge.
func CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var category models.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if category.CategoryID == "" {
		category.CategoryID = uuid.NewString()
	}
	if err := validate.Struct(category); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid category payload", err)
		return
	}
	if err := validateTimeWindow(category); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid time window", err)
		return
	}

	if category.ParentCategory != "" {
		count, err := categoryCollection().CountDocuments(ctx, bson.M{"id": category.ParentCategory})
		if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, "Error checking parent category", err)
			return
		}
		if count == 0 {
			helper.RespondError(w, http.StatusBadRequest, "parentCategory does not reference an existing category", nil)
			return
		}
	}

	count, err := categoryCollection().CountDocuments(ctx, bson.M{"id": category.CategoryID})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Error checking existing categories", err)
		return
	}
	if count > 0 {
		helper.RespondError(w, http.StatusConflict, "A category with this id already exists", nil)
		return
	}

	if category.Visible == nil {
		visible := true
		category.Visible = &visible
	}
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt

	if _, err := categoryCollection().InsertOne(ctx, category); err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Category was not created", err)
		return
	}

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusCreated, "Category created successfully", category)
}

// UpdateCategory serves PUT /categories/{category_id}. Same non-destructive
// field-merge contract as the product sync, and it never creates: unknown ids
// are a 404, not an upsert.
func UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categoryID := mux.Vars(r)["category_id"]

	var patch models.CategoryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := menu.ValidateCategoryPatch(patch); err != nil {
		helper.RespondError(w, http.StatusBadRequest, "Invalid category payload", err)
		return
	}

	if patch.ParentCategory != nil && *patch.ParentCategory != "" {
		categories, err := fetchCategories(ctx)
		if err != nil {
			helper.RespondError(w, http.StatusInternalServerError, "Error checking parent category", err)
			return
		}
		if !categoryExists(categories, *patch.ParentCategory) {
			helper.RespondError(w, http.StatusBadRequest, "parentCategory does not reference an existing category", nil)
			return
		}
		if menu.WouldCycle(categories, categoryID, *patch.ParentCategory) {
			helper.RespondError(w, http.StatusBadRequest, "parentCategory would create a cycle", nil)
			return
		}
	}

	update := menu.BuildCategoryUpdate(patch, time.Now())
	result, err := categoryCollection().UpdateOne(ctx, bson.M{"id": categoryID}, update)
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Category update failed", err)
		return
	}
	if result.MatchedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Category updated successfully", nil)
}

// DeleteCategory serves DELETE /categories/{category_id}: the destructive
// path. The common flow detaches subcategories instead (see the admin
// subcategory surface); this one actually removes the document.
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	categoryID := mux.Vars(r)["category_id"]

	result, err := categoryCollection().DeleteOne(ctx, bson.M{"id": categoryID})
	if err != nil {
		helper.RespondError(w, http.StatusInternalServerError, "Category deletion failed", err)
		return
	}
	if result.DeletedCount == 0 {
		helper.RespondError(w, http.StatusNotFound, "Category not found", nil)
		return
	}

	invalidateMenuCache(ctx)
	helper.RespondSuccess(w, http.StatusOK, "Category deleted successfully", nil)
}

func validateTimeWindow(category models.Category) error {
	if !category.TimeRestricted {
		return nil
	}
	if _, err := menu.ParseClock(category.StartTime); err != nil {
		return err
	}
	if _, err := menu.ParseClock(category.EndTime); err != nil {
		return err
	}
	return nil
}

func categoryExists(categories []models.Category, id string) bool {
	for _, c := range categories {
		if c.CategoryID == id {
			return true
		}
	}
	return false
}
