package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseindex/sseindex-server/internal/index"
)

func TestNodeJSONRoundTripTail(t *testing.T) {
	var n index.Node
	n.ID = "doc1"

	data, err := n.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ptr":"NULL"`)

	var got index.Node
	require.NoError(t, got.UnmarshalJSON(data))
	assert.Equal(t, "doc1", got.ID)
	assert.True(t, got.IsTail())
}

func TestNodeJSONRejectsBadPtr(t *testing.T) {
	var got index.Node
	err := got.UnmarshalJSON([]byte(`{"id":"doc1","k":"00000000000000000000000000000000","ptr":"zz"}`))
	assert.Error(t, err)
}

func TestNodeJSONRejectsBadKeyLength(t *testing.T) {
	var got index.Node
	err := got.UnmarshalJSON([]byte(`{"id":"doc1","k":"ab","ptr":"NULL"}`))
	assert.Error(t, err)
}
