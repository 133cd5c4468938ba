// Package sseerr defines the typed error kinds shared by the index
// builder, the trapdoor generator and the server-side search path.
package sseerr

import (
	"errors"
	"strconv"
)

// CryptoError wraps a failure in a symmetric-key operation: wrong key
// length, a missing IV, or PKCS#7 padding that does not unpad cleanly.
type CryptoError struct {
	Op  string
	Err error
}

func (e *CryptoError) Error() string { return "sse: crypto error in " + e.Op + ": " + e.Err.Error() }
func (e *CryptoError) Unwrap() error { return e.Err }

func NewCryptoError(op string, err error) error {
	return &CryptoError{Op: op, Err: err}
}

// IndexCapacityError is returned by the builder before any mutation when
// the total posting count is too close to the table size M.
type IndexCapacityError struct {
	Postings int
	M        uint64
}

func (e *IndexCapacityError) Error() string {
	return "sse: index capacity exceeded: postings too close to table size"
}

// CorruptedNodeError is a server-side parse failure while walking the
// chain in A: malformed node JSON, a hex field of the wrong length, or a
// ptr field that is neither "NULL" nor a valid 4-byte hex address.
type CorruptedNodeError struct {
	Addr uint32
	Err  error
}

func (e *CorruptedNodeError) Error() string {
	return "sse: corrupted node at address " + strconv.FormatUint(uint64(e.Addr), 10) + ": " + e.Err.Error()
}
func (e *CorruptedNodeError) Unwrap() error { return e.Err }

// ErrProtocol is returned before walking the chain when a trapdoor's
// mask has the wrong length.
var ErrProtocol = errors.New("sse: protocol error: trapdoor mask has wrong length")
