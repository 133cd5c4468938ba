// Package docstore encrypts and decrypts the plaintext document blobs
// that sit alongside the encrypted index, under the client's K4.
package docstore

import (
	"github.com/sseindex/sseindex-server/internal/keys"
	"github.com/sseindex/sseindex-server/internal/ssecrypto"
)

// EncryptDocuments encrypts every plaintext document under k.K4, each
// with its own fresh IV.
func EncryptDocuments(k *keys.ClientKeys, documents map[string][]byte) (map[string][]byte, error) {
	out := make(map[string][]byte, len(documents))
	for id, plaintext := range documents {
		ct, err := ssecrypto.SKEEncrypt(k.K4[:], plaintext)
		if err != nil {
			return nil, err
		}
		out[id] = ct
	}
	return out, nil
}

// DecryptDocument inverts EncryptDocuments for a single document.
func DecryptDocument(k *keys.ClientKeys, ciphertext []byte) ([]byte, error) {
	return ssecrypto.SKEDecrypt(k.K4[:], ciphertext)
}
