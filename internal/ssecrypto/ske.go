package ssecrypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"

	"github.com/sseindex/sseindex-server/internal/sseerr"
)

// KeySize is the width of every symmetric key in the scheme: AES-128.
const KeySize = 16

const blockSize = aes.BlockSize // 16

// SKEEncrypt performs AES-128-CBC with a fresh random IV and PKCS#7
// padding. The output is IV (16 B) ‖ ciphertext. key must be KeySize bytes.
func SKEEncrypt(key, plaintext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, sseerr.NewCryptoError("SKEEncrypt", errors.New("key must be 16 bytes"))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, sseerr.NewCryptoError("SKEEncrypt", err)
	}
	padded := pkcs7Pad(plaintext, blockSize)

	out := make([]byte, blockSize+len(padded))
	iv := out[:blockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, sseerr.NewCryptoError("SKEEncrypt", err)
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[blockSize:], padded)
	return out, nil
}

// SKEDecrypt inverts SKEEncrypt. A wrong key surfaces as a padding error,
// which is reported the same way as any other CryptoError — callers on the
// server side must not distinguish it from other failure modes (spec §7).
func SKEDecrypt(key, ciphertext []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, sseerr.NewCryptoError("SKEDecrypt", errors.New("key must be 16 bytes"))
	}
	if len(ciphertext) < blockSize || (len(ciphertext)-blockSize)%blockSize != 0 {
		return nil, sseerr.NewCryptoError("SKEDecrypt", errors.New("ciphertext too short or misaligned"))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, sseerr.NewCryptoError("SKEDecrypt", err)
	}
	iv := ciphertext[:blockSize]
	ct := ciphertext[blockSize:]
	if len(ct) == 0 {
		return nil, sseerr.NewCryptoError("SKEDecrypt", errors.New("empty ciphertext body"))
	}

	padded := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(padded, ct)

	plain, err := pkcs7Unpad(padded, blockSize)
	if err != nil {
		return nil, sseerr.NewCryptoError("SKEDecrypt", err)
	}
	return plain, nil
}

func pkcs7Pad(data []byte, size int) []byte {
	padLen := size - len(data)%size
	padding := bytes.Repeat([]byte{byte(padLen)}, padLen)
	return append(append([]byte{}, data...), padding...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	n := len(data)
	if n == 0 || n%size != 0 {
		return nil, errors.New("invalid padding: bad length")
	}
	padLen := int(data[n-1])
	if padLen == 0 || padLen > size || padLen > n {
		return nil, errors.New("invalid padding: bad pad byte")
	}
	for _, b := range data[n-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("invalid padding: inconsistent pad bytes")
		}
	}
	return data[:n-padLen], nil
}
