// Package hexutil provides the small hex encode/decode helpers shared by
// the keyfile format and the node wire format, both of which represent
// fixed-width byte fields as lowercase hex strings.
package hexutil

import (
	"encoding/hex"
	"fmt"
)

// Encode returns the lowercase hex encoding of b.
func Encode(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeExact decodes s as hex and requires the result be exactly n bytes.
func DecodeExact(s string, n int) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != n {
		return nil, fmt.Errorf("expected %d bytes, got %d", n, len(b))
	}
	return b, nil
}
