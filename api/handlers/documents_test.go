package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseindex/sseindex-server/api/handlers"
	"github.com/sseindex/sseindex-server/internal/store"
)

func TestDocumentHandlerFound(t *testing.T) {
	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.PutDocuments(map[string][]byte{"doc1": []byte("ciphertext-bytes")}))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/documents/{id}", handlers.DocumentHandler(db))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/doc1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ciphertext-bytes", rec.Body.String())
}

func TestDocumentHandlerNotFound(t *testing.T) {
	db, err := store.Open("sqlite", ":memory:")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/documents/{id}", handlers.DocumentHandler(db))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/missing", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
