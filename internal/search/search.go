// Package search implements the server-side chain walk: given a
// trapdoor, unmask the corresponding T entry and decrypt successive nodes
// in A until the chain terminates.
package search

import (
	"encoding/binary"

	"github.com/sseindex/sseindex-server/internal/index"
	"github.com/sseindex/sseindex-server/internal/sseerr"
	"github.com/sseindex/sseindex-server/internal/ssecrypto"
	"github.com/sseindex/sseindex-server/internal/trapdoor"
)

// Search walks the encrypted chain addressed by td against table and
// array, returning the ordered list of document identifiers.
//
// Per spec, the server must never reveal which of "keyword not indexed",
// "forged trapdoor" or "chain terminated" occurred: every failure mode
// below — a missing T entry (never happens in a correctly padded index),
// a decrypt/parse failure partway down the chain, or a clean NULL
// terminator — all produce either a normal (possibly empty) result or a
// generic error that the caller must map to an empty result.
func Search(table *index.Table, array *index.Array, td trapdoor.Trapdoor) ([]string, error) {
	if len(td.Mask) != index.EntrySize {
		return nil, sseerr.ErrProtocol
	}

	entry, ok := table.Get(td.Index)
	if !ok {
		return nil, nil
	}

	var plain [index.EntrySize]byte
	for i := range plain {
		plain[i] = entry[i] ^ td.Mask[i]
	}

	addr := binary.BigEndian.Uint32(plain[:4])
	var key [16]byte
	copy(key[:], plain[4:])

	var results []string
	maxSteps := table.M()
	for step := uint64(0); step < maxSteps; step++ {
		blob, ok := array.Get(addr)
		if !ok || blob == nil {
			break
		}

		nodePlain, err := ssecrypto.SKEDecrypt(key[:], blob)
		if err != nil {
			return nil, &sseerr.CorruptedNodeError{Addr: addr, Err: err}
		}

		var node index.Node
		if err := node.UnmarshalJSON(nodePlain); err != nil {
			return nil, err
		}

		results = append(results, node.ID)
		if node.IsTail() {
			break
		}
		addr = *node.Ptr
		key = node.K
	}
	return results, nil
}
