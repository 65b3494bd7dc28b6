package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstash/promptstash/internal/apiserver/database"
)

func TestUploadAttachmentTypeAndSizeRules(t *testing.T) {
	e := newTestEnv(t)
	_, _, token := e.seedMember(t, "dev@example.com", "acme")

	t.Run("missing file", func(t *testing.T) {
		w := e.doJSON(http.MethodPost, "/api/upload", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("disallowed type", func(t *testing.T) {
		w := e.doMultipart(t, "/api/upload", token, "script.sh", "application/x-sh", []byte("#!/bin/sh"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, e.store.Len())
	})

	t.Run("svg is not on the allow-list", func(t *testing.T) {
		w := e.doMultipart(t, "/api/upload", token, "pic.svg", "image/svg+xml", []byte("<svg/>"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("over the limit", func(t *testing.T) {
		payload := bytes.Repeat([]byte("a"), maxUploadSize+1)
		w := e.doMultipart(t, "/api/upload", token, "big.png", "image/png", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, e.store.Len())
	})

	t.Run("exactly at the limit is accepted", func(t *testing.T) {
		payload := bytes.Repeat([]byte("a"), maxUploadSize)
		w := e.doMultipart(t, "/api/upload", token, "edge.png", "image/png", payload)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, e.store.Len())
	})
}

func TestUploadAndDeleteAttachment(t *testing.T) {
	e := newTestEnv(t)
	_, _, token := e.seedMember(t, "dev@example.com", "acme")

	w := e.doMultipart(t, "/api/upload", token, "notes.pdf", "application/pdf", []byte("%PDF-1.4"))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data database.Attachment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "notes.pdf", resp.Data.OriginalName)
	assert.Equal(t, "application/pdf", resp.Data.ContentType)
	assert.NotEmpty(t, resp.Data.URL)
	// The storage key never leaves the server
	assert.NotContains(t, w.Body.String(), `"storageKey"`)
	assert.Equal(t, 1, e.store.Len())

	w = e.doJSON(http.MethodGet, "/api/attachments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []database.Attachment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)

	w = e.doJSON(http.MethodDelete, "/api/upload", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A failed storage delete must leave the metadata row in place
	e.store.RemoveErr = assert.AnError
	w = e.doJSON(http.MethodDelete, fmt.Sprintf("/api/upload?id=%d", resp.Data.ID), token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	w = e.doJSON(http.MethodGet, "/api/attachments", token, nil)
	list = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
	e.store.RemoveErr = nil

	w = e.doJSON(http.MethodDelete, fmt.Sprintf("/api/upload?id=%d", resp.Data.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Equal(t, 0, e.store.Len())

	w = e.doJSON(http.MethodDelete, fmt.Sprintf("/api/upload?id=%d", resp.Data.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttachmentWorkspaceIsolation(t *testing.T) {
	e := newTestEnv(t)
	_, _, tokenA := e.seedMember(t, "alice@example.com", "team-a")
	_, _, tokenB := e.seedMember(t, "bob@example.com", "team-b")

	w := e.doMultipart(t, "/api/upload", tokenA, "pic.jpg", "image/jpeg", []byte("jpegdata"))
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data database.Attachment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = e.doJSON(http.MethodDelete, fmt.Sprintf("/api/upload?id=%d", resp.Data.ID), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	// The object is untouched
	assert.Equal(t, 1, e.store.Len())
}
