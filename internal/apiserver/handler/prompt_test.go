package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash/internal/apiserver/database"
)

func createPrompt(t *testing.T, e *testEnv, token, title, content string) uint {
	t.Helper()
	w := e.doJSON(http.MethodPost, "/api/prompts", token, map[string]string{
		"title": title, "content": content,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data database.Prompt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ID
}

func TestPromptTestRatingRecompute(t *testing.T) {
	e := newTestEnv(t)
	_, _, token := e.seedMember(t, "dev@example.com", "acme")
	id := createPrompt(t, e, token, "Summarize", "Summarize {{text}} briefly")

	postTest := func(body map[string]interface{}) *struct {
		Code   int
		Rating float64
	} {
		w := e.doJSON(http.MethodPost, fmt.Sprintf("/api/prompts/%d/tests", id), token, body)
		var prompt struct {
			Rating float64 `json:"rating"`
		}
		if w.Code == http.StatusCreated {
			gw := e.doJSON(http.MethodGet, fmt.Sprintf("/api/prompts/%d", id), token, nil)
			require.Equal(t, http.StatusOK, gw.Code)
			require.NoError(t, json.Unmarshal(gw.Body.Bytes(), &prompt))
		}
		return &struct {
			Code   int
			Rating float64
		}{w.Code, prompt.Rating}
	}

	t.Run("rating out of range", func(t *testing.T) {
		res := postTest(map[string]interface{}{"output": "ok", "rating": 6})
		assert.Equal(t, http.StatusBadRequest, res.Code)
		res = postTest(map[string]interface{}{"output": "ok", "rating": 0})
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("average follows rated tests", func(t *testing.T) {
		res := postTest(map[string]interface{}{"output": "good", "isSuccess": true, "rating": 5})
		require.Equal(t, http.StatusCreated, res.Code)
		assert.InDelta(t, 5.0, res.Rating, 1e-9)

		res = postTest(map[string]interface{}{"output": "meh", "rating": 2})
		require.Equal(t, http.StatusCreated, res.Code)
		assert.InDelta(t, 3.5, res.Rating, 1e-9)
	})

	t.Run("unrated test leaves average alone", func(t *testing.T) {
		res := postTest(map[string]interface{}{"output": "unrated"})
		require.Equal(t, http.StatusCreated, res.Code)
		assert.InDelta(t, 3.5, res.Rating, 1e-9)
	})

	t.Run("tests listed oldest first", func(t *testing.T) {
		w := e.doJSON(http.MethodGet, fmt.Sprintf("/api/prompts/%d/tests", id), token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var tests []database.PromptTest
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tests))
		require.Len(t, tests, 3)
		assert.Equal(t, "good", tests[0].Output)
	})
}

func TestRenderPrompt(t *testing.T) {
	e := newTestEnv(t)
	_, _, token := e.seedMember(t, "dev@example.com", "acme")
	id := createPrompt(t, e, token, "Review", "Review {{code}} for {{audience}}, then {{code}} again")

	w := e.doJSON(http.MethodPost, fmt.Sprintf("/api/prompts/%d/render", id), token, map[string]interface{}{
		"values": map[string]string{"code": "main.go"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Content   string   `json:"content"`
		Variables []string `json:"variables"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Unknown tokens stay verbatim, known tokens are substituted everywhere
	assert.Equal(t, "Review main.go for {{audience}}, then main.go again", resp.Content)
	assert.Equal(t, []string{"code", "audience"}, resp.Variables)
}

func TestPromptDeleteCascades(t *testing.T) {
	e := newTestEnv(t)
	_, _, token := e.seedMember(t, "dev@example.com", "acme")
	id := createPrompt(t, e, token, "Doomed", "{{x}}")

	w := e.doJSON(http.MethodPost, fmt.Sprintf("/api/prompts/%d/tests", id), token, map[string]interface{}{
		"output": "run",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.doJSON(http.MethodDelete, fmt.Sprintf("/api/prompts/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.doJSON(http.MethodGet, fmt.Sprintf("/api/prompts/%d/tests", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
