package ssecrypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sseindex/sseindex-server/internal/ssecrypto"
)

func TestSKERoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef")
	for _, m := range [][]byte{
		[]byte(""),
		[]byte("short"),
		[]byte("exactly16bytes!!"),
		make([]byte, 1000),
	} {
		ct, err := ssecrypto.SKEEncrypt(key, m)
		require.NoError(t, err)

		pt, err := ssecrypto.SKEDecrypt(key, ct)
		require.NoError(t, err)
		require.Equal(t, m, pt)
	}
}

func TestSKEFreshIVPerCall(t *testing.T) {
	key := []byte("0123456789abcdef")
	a, err := ssecrypto.SKEEncrypt(key, []byte("same plaintext"))
	require.NoError(t, err)
	b, err := ssecrypto.SKEEncrypt(key, []byte("same plaintext"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "ciphertext must differ across calls due to random IV")
}

func TestSKEWrongKeyLength(t *testing.T) {
	_, err := ssecrypto.SKEEncrypt([]byte("tooshort"), []byte("data"))
	assert.Error(t, err)

	key := []byte("0123456789abcdef")
	ct, err := ssecrypto.SKEEncrypt(key, []byte("data"))
	require.NoError(t, err)
	_, err = ssecrypto.SKEDecrypt([]byte("wrongsize"), ct)
	assert.Error(t, err)
}

func TestSKEWrongKeyYieldsErrorOrGarbageNeverPanics(t *testing.T) {
	key := []byte("0123456789abcdef")
	wrong := []byte("fedcba9876543210")
	ct, err := ssecrypto.SKEEncrypt(key, []byte("a message that fills multiple AES blocks of data"))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		_, _ = ssecrypto.SKEDecrypt(wrong, ct)
	})
}
