// Package keys holds the client's secret key set: K1..K3 seed the three
// PRFs used for addressing, masking and table indexing, and K4 is the
// symmetric key for document payload encryption. Keys are generated once
// at client construction and never leave the client.
package keys

import (
	"crypto/rand"
	"encoding/json"
	"io"

	"github.com/sseindex/sseindex-server/internal/hexutil"
	"github.com/sseindex/sseindex-server/internal/ssecrypto"
)

// ClientKeys is the client's full private key set, process-lifetime.
type ClientKeys struct {
	K1 [ssecrypto.KeySize]byte // seeds PRF_int for addresses in A
	K2 [ssecrypto.KeySize]byte // seeds PRF_bytes for T-entry masks
	K3 [ssecrypto.KeySize]byte // seeds PRF_int for T indices
	K4 [ssecrypto.KeySize]byte // SKE key for document payloads
}

// Generate draws a fresh ClientKeys from a cryptographic random source.
func Generate(rnd io.Reader) (*ClientKeys, error) {
	if rnd == nil {
		rnd = rand.Reader
	}
	var k ClientKeys
	for _, b := range [][]byte{k.K1[:], k.K2[:], k.K3[:], k.K4[:]} {
		if _, err := io.ReadFull(rnd, b); err != nil {
			return nil, err
		}
	}
	return &k, nil
}

// Zero overwrites every key byte. Callers MUST invoke this when a
// ClientKeys is no longer needed; the reference implementation this
// scheme is modeled on does not, but a systems reimplementation should not
// leave key material sitting in live memory (spec §5, resource scoping).
func (k *ClientKeys) Zero() {
	for _, b := range [][]byte{k.K1[:], k.K2[:], k.K3[:], k.K4[:]} {
		for i := range b {
			b[i] = 0
		}
	}
}

// keyfile is the on-disk JSON shape used to hand keys from the
// "build-index" command to the "query" command. It is client-private and
// must never be shipped to the server.
type keyfile struct {
	K1 string `json:"k1"`
	K2 string `json:"k2"`
	K3 string `json:"k3"`
	K4 string `json:"k4"`
}

// MarshalJSON hex-encodes each key so the keyfile is human-inspectable.
func (k *ClientKeys) MarshalJSON() ([]byte, error) {
	return json.Marshal(keyfile{
		K1: hexutil.Encode(k.K1[:]),
		K2: hexutil.Encode(k.K2[:]),
		K3: hexutil.Encode(k.K3[:]),
		K4: hexutil.Encode(k.K4[:]),
	})
}

// UnmarshalJSON reverses MarshalJSON, validating each field decodes to
// exactly KeySize bytes.
func (k *ClientKeys) UnmarshalJSON(data []byte) error {
	var kf keyfile
	if err := json.Unmarshal(data, &kf); err != nil {
		return err
	}
	fields := []struct {
		dst *[ssecrypto.KeySize]byte
		src string
	}{
		{&k.K1, kf.K1}, {&k.K2, kf.K2}, {&k.K3, kf.K3}, {&k.K4, kf.K4},
	}
	for _, f := range fields {
		b, err := hexutil.DecodeExact(f.src, ssecrypto.KeySize)
		if err != nil {
			return err
		}
		copy(f.dst[:], b)
	}
	return nil
}
