// Package ssecrypto implements the pseudo-random functions and the
// symmetric cipher the SSE-1 scheme is built from. Both PRFs must be
// preserved bit-exactly: PRFInt is SHA-256 over key‖data interpreted as a
// big-endian integer, and PRFBytes is PBKDF2-HMAC-SHA256 with the keyword
// as password and the key as salt — a deliberate deviation from the usual
// HMAC-as-PRF construction, kept for cross-implementation compatibility.
package ssecrypto

import (
	"crypto/sha256"
	"math/big"

	"golang.org/x/crypto/pbkdf2"
)

// pbkdf2Iterations is fixed by the scheme; changing it breaks
// compatibility with any peer built against the reference.
const pbkdf2Iterations = 1000

// PRFInt computes SHA-256(key ‖ data) and returns it as an unbounded
// non-negative big-endian integer. Callers reduce modulo the table size M
// to obtain an address or table index.
func PRFInt(key []byte, data string) *big.Int {
	h := sha256.Sum256(append(append([]byte{}, key...), data...))
	return new(big.Int).SetBytes(h[:])
}

// PRFIntMod is PRFInt(key, data) mod m, the form every caller in this
// package actually needs.
func PRFIntMod(key []byte, data string, m uint64) uint64 {
	mod := new(big.Int).Mod(PRFInt(key, data), new(big.Int).SetUint64(m))
	return mod.Uint64()
}

// PRFBytes derives length pseudo-random bytes from data (used as the
// PBKDF2 password) salted with key, 1000 iterations of HMAC-SHA256.
func PRFBytes(key []byte, data string, length int) []byte {
	return pbkdf2.Key([]byte(data), key, pbkdf2Iterations, length, sha256.New)
}
