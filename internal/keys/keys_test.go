package keys_test

import (
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseindex/sseindex-server/internal/keys"
)

func TestGenerateKeySizes(t *testing.T) {
	k, err := keys.Generate(rand.Reader)
	require.NoError(t, err)
	assert.Len(t, k.K1, 16)
	assert.Len(t, k.K2, 16)
	assert.Len(t, k.K3, 16)
	assert.Len(t, k.K4, 16)
}

func TestZeroClearsKeys(t *testing.T) {
	k, err := keys.Generate(rand.Reader)
	require.NoError(t, err)
	k.Zero()
	var zero [16]byte
	assert.Equal(t, zero, k.K1)
	assert.Equal(t, zero, k.K2)
	assert.Equal(t, zero, k.K3)
	assert.Equal(t, zero, k.K4)
}

func TestJSONRoundTrip(t *testing.T) {
	k, err := keys.Generate(rand.Reader)
	require.NoError(t, err)

	data, err := json.Marshal(k)
	require.NoError(t, err)

	var got keys.ClientKeys
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *k, got)
}

func TestUnmarshalRejectsBadHexLength(t *testing.T) {
	var got keys.ClientKeys
	err := json.Unmarshal([]byte(`{"k1":"ab","k2":"00","k3":"00","k4":"00"}`), &got)
	assert.Error(t, err)
}
