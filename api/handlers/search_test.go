package handlers_test

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseindex/sseindex-server/api/handlers"
	"github.com/sseindex/sseindex-server/internal/index"
	"github.com/sseindex/sseindex-server/internal/keys"
	"github.com/sseindex/sseindex-server/internal/trapdoor"
)

const testM = 32749

func buildTestIndex(t *testing.T) (*keys.ClientKeys, *index.Table, *index.Array) {
	t.Helper()
	k, err := keys.Generate(rand.Reader)
	require.NoError(t, err)

	b := index.NewBuilder(k, testM, rand.Reader)
	a, tbl, err := b.Build([]index.DocKeywords{
		{DocID: "doc1", Keywords: []string{"cancer"}},
	})
	require.NoError(t, err)
	return k, tbl, a
}

func doSearch(t *testing.T, tbl *index.Table, a *index.Array, reqBody []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewReader(reqBody))
	rec := httptest.NewRecorder()
	handlers.SearchHandler(tbl, a)(rec, req)
	return rec
}

func TestSearchHandlerMatchingKeyword(t *testing.T) {
	k, tbl, a := buildTestIndex(t)
	td := trapdoor.Generate(k, testM, "cancer")

	body, err := json.Marshal(map[string]any{
		"index": td.Index,
		"mask":  hex.EncodeToString(td.Mask[:]),
	})
	require.NoError(t, err)

	rec := doSearch(t, tbl, a, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		DocIDs []string `json:"doc_ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"doc1"}, resp.DocIDs)
}

func TestSearchHandlerUnknownKeywordIsEmptyNotError(t *testing.T) {
	k, tbl, a := buildTestIndex(t)
	td := trapdoor.Generate(k, testM, "nonexistent")

	body, _ := json.Marshal(map[string]any{
		"index": td.Index,
		"mask":  hex.EncodeToString(td.Mask[:]),
	})

	rec := doSearch(t, tbl, a, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"doc_ids":null}`, rec.Body.String())
}

func TestSearchHandlerRejectsMalformedMask(t *testing.T) {
	_, tbl, a := buildTestIndex(t)

	body, _ := json.Marshal(map[string]any{
		"index": 0,
		"mask":  "not-hex",
	})
	rec := doSearch(t, tbl, a, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchHandlerRejectsBadJSON(t *testing.T) {
	_, tbl, a := buildTestIndex(t)
	rec := doSearch(t, tbl, a, []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
