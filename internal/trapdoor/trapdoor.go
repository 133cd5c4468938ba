// Package trapdoor generates the per-query token that lets the server
// execute exactly one keyword search without learning the keyword.
package trapdoor

import (
	"github.com/sseindex/sseindex-server/internal/index"
	"github.com/sseindex/sseindex-server/internal/keys"
	"github.com/sseindex/sseindex-server/internal/ssecrypto"
)

// Trapdoor is structurally (index, mask); it may be transmitted in the
// clear to the server. Generating it twice for the same keyword yields
// bitwise-identical values — this determinism is inherent to SSE-1 and is
// an accepted leakage (repeated queries are linkable), not a bug.
type Trapdoor struct {
	Index uint64
	Mask  [index.EntrySize]byte
}

// Generate computes the trapdoor for keyword under the client's keys.
func Generate(k *keys.ClientKeys, m uint64, keyword string) Trapdoor {
	idx := ssecrypto.PRFIntMod(k.K3[:], keyword, m)
	var mask [index.EntrySize]byte
	copy(mask[:], ssecrypto.PRFBytes(k.K2[:], keyword, index.EntrySize))
	return Trapdoor{Index: idx, Mask: mask}
}
