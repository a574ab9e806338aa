package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The handlers below are exercised up to the point where they would touch the
// store; payload validation and per-unit acks need no live collection.

func TestSyncMenu_EmptyPayloadRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/menu", strings.NewReader(`{"sections":[]}`))
	w := httptest.NewRecorder()

	SyncMenu(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncMenu_MalformedBodyRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/menu", strings.NewReader(`{"sections":`))
	w := httptest.NewRecorder()

	SyncMenu(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSyncMenu_SectionWithoutCategoryFailsPerItem(t *testing.T) {
	body := `{"sections":[{"section":"vinos","items":[{"id":"rioja"},{"id":"albarino"}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/menu", strings.NewReader(body))
	w := httptest.NewRecorder()

	SyncMenu(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Section string `json:"section"`
			Error   string `json:"error"`
			Items   []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
				Error  string `json:"error"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)

	sec := resp.Data[0]
	assert.Equal(t, "vinos", sec.Section)
	assert.Equal(t, "categoryId is required", sec.Error)
	require.Len(t, sec.Items, 2)
	assert.Equal(t, "rioja", sec.Items[0].ID)
	assert.Equal(t, "albarino", sec.Items[1].ID)
	for _, item := range sec.Items {
		assert.Equal(t, "invalid", item.Status)
		assert.Equal(t, "categoryId is required", item.Error)
	}
}
