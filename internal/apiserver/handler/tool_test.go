package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash/internal/apiserver/database"
)

func TestToolCRUD(t *testing.T) {
	e := newTestEnv(t)
	_, _, token := e.seedMember(t, "dev@example.com", "acme")

	t.Run("create requires name", func(t *testing.T) {
		w := e.doJSON(http.MethodPost, "/api/tools", token, map[string]interface{}{
			"description": "nameless",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid mastery level", func(t *testing.T) {
		w := e.doJSON(http.MethodPost, "/api/tools", token, map[string]interface{}{
			"name": "kubectl", "masteryLevel": "wizard",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	var toolID uint
	t.Run("create", func(t *testing.T) {
		w := e.doJSON(http.MethodPost, "/api/tools", token, map[string]interface{}{
			"name": "kubectl", "description": "cluster cli", "masteryLevel": "advanced",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data database.Tool `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotZero(t, resp.Data.ID)
		toolID = resp.Data.ID
	})

	t.Run("update", func(t *testing.T) {
		w := e.doJSON(http.MethodPut, fmt.Sprintf("/api/tools/%d", toolID), token, map[string]interface{}{
			"name": "kubectl", "description": "kubernetes cli",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "kubernetes cli")
	})

	t.Run("unknown category reference", func(t *testing.T) {
		w := e.doJSON(http.MethodPut, fmt.Sprintf("/api/tools/%d", toolID), token, map[string]interface{}{
			"name": "kubectl", "categoryId": 999,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("archive hides from list", func(t *testing.T) {
		w := e.doJSON(http.MethodPost, fmt.Sprintf("/api/tools/%d/archive", toolID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = e.doJSON(http.MethodGet, "/api/tools", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var tools []database.Tool
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
		assert.Empty(t, tools)

		w = e.doJSON(http.MethodPost, fmt.Sprintf("/api/tools/%d/unarchive", toolID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = e.doJSON(http.MethodGet, "/api/tools", token, nil)
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
		assert.Len(t, tools, 1)
	})

	t.Run("favorite toggle", func(t *testing.T) {
		w := e.doJSON(http.MethodPost, fmt.Sprintf("/api/tools/%d/favorite", toolID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"isFavorite":true`)

		w = e.doJSON(http.MethodPost, fmt.Sprintf("/api/tools/%d/favorite", toolID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"isFavorite":false`)
	})

	t.Run("delete", func(t *testing.T) {
		w := e.doJSON(http.MethodDelete, fmt.Sprintf("/api/tools/%d", toolID), token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = e.doJSON(http.MethodGet, fmt.Sprintf("/api/tools/%d", toolID), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToolTagAssignment(t *testing.T) {
	e := newTestEnv(t)
	_, ws, token := e.seedMember(t, "dev@example.com", "acme")
	ctx := context.Background()

	tag := &database.Tag{WorkspaceID: ws.ID, Name: "networking"}
	require.NoError(t, e.db.CreateTag(ctx, tag))

	t.Run("create with tag", func(t *testing.T) {
		w := e.doJSON(http.MethodPost, "/api/tools", token, map[string]interface{}{
			"name": "nmap", "tagIds": []uint{tag.ID},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "networking")
	})

	t.Run("tag from another workspace rejected", func(t *testing.T) {
		other := &database.Workspace{Name: "other", Slug: "other"}
		require.NoError(t, e.db.CreateWorkspace(ctx, other))
		foreign := &database.Tag{WorkspaceID: other.ID, Name: "foreign"}
		require.NoError(t, e.db.CreateTag(ctx, foreign))

		w := e.doJSON(http.MethodPost, "/api/tools", token, map[string]interface{}{
			"name": "wireshark", "tagIds": []uint{foreign.ID},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWorkspaceIsolationOverHTTP(t *testing.T) {
	e := newTestEnv(t)
	_, _, tokenA := e.seedMember(t, "alice@example.com", "team-a")
	_, _, tokenB := e.seedMember(t, "bob@example.com", "team-b")

	w := e.doJSON(http.MethodPost, "/api/tools", tokenA, map[string]interface{}{"name": "secret-tool"})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data database.Tool `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// Another workspace's member sees neither the list entry nor the row
	w = e.doJSON(http.MethodGet, "/api/tools", tokenB, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tools []database.Tool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tools))
	assert.Empty(t, tools)

	w = e.doJSON(http.MethodGet, fmt.Sprintf("/api/tools/%d", resp.Data.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.doJSON(http.MethodDelete, fmt.Sprintf("/api/tools/%d", resp.Data.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// The owner still sees it afterwards
	w = e.doJSON(http.MethodGet, fmt.Sprintf("/api/tools/%d", resp.Data.ID), tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestActivityLogRecordsMutations(t *testing.T) {
	e := newTestEnv(t)
	_, _, token := e.seedMember(t, "dev@example.com", "acme")

	w := e.doJSON(http.MethodPost, "/api/tools", token, map[string]interface{}{"name": "htop"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = e.doJSON(http.MethodPost, "/api/categories", token, map[string]interface{}{"name": "monitoring"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.doJSON(http.MethodGet, "/api/activity", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []database.ActivityLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "CREATE", entries[0].Action)
	assert.Equal(t, "category", entries[0].EntityType)
	assert.Equal(t, "tool", entries[1].EntityType)
}
