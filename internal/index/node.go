package index

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/sseindex/sseindex-server/internal/hexutil"
	"github.com/sseindex/sseindex-server/internal/sseerr"
)

// nullPtr is the sentinel written in place of a next-node address when a
// node is the tail of its chain.
const nullPtr = "NULL"

// zeroKey is the dummy key stored alongside a NULL pointer; there is no
// next node to decrypt so the key carries no information.
var zeroKey [16]byte

// Node is the plaintext layout of a single encrypted entry in A. It is
// part of the wire contract (spec §6): all three JSON keys, "k" and "ptr"
// hex-encoded, are what the server parses after decrypting a chain link.
type Node struct {
	ID  string // document identifier
	K   [16]byte
	Ptr *uint32 // nil means NULL (tail of chain)
}

type nodeWire struct {
	ID  string `json:"id"`
	K   string `json:"k"`
	Ptr string `json:"ptr"`
}

// MarshalJSON renders the node in the canonical wire shape.
func (n Node) MarshalJSON() ([]byte, error) {
	ptr := nullPtr
	if n.Ptr != nil {
		var b [4]byte
		binary.BigEndian.PutUint32(b[:], *n.Ptr)
		ptr = hexutil.Encode(b[:])
	}
	return json.Marshal(nodeWire{
		ID:  n.ID,
		K:   hexutil.Encode(n.K[:]),
		Ptr: ptr,
	})
}

// UnmarshalJSON parses the canonical wire shape, returning a
// CorruptedNodeError (wrapping the specific cause) for any field that does
// not match the shape spec §3 requires.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w nodeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return &sseerr.CorruptedNodeError{Err: fmt.Errorf("node json: %w", err)}
	}
	key, err := hexutil.DecodeExact(w.K, 16)
	if err != nil {
		return &sseerr.CorruptedNodeError{Err: fmt.Errorf("k field: %w", err)}
	}
	n.ID = w.ID
	copy(n.K[:], key)

	if w.Ptr == nullPtr {
		n.Ptr = nil
		return nil
	}
	ptrBytes, err := hexutil.DecodeExact(w.Ptr, 4)
	if err != nil {
		return &sseerr.CorruptedNodeError{Err: fmt.Errorf("ptr field: %w", err)}
	}
	addr := binary.BigEndian.Uint32(ptrBytes)
	n.Ptr = &addr
	return nil
}

// IsTail reports whether this node terminates its chain.
func (n Node) IsTail() bool { return n.Ptr == nil }

// tailNode builds the sentinel tail node for doc.
func tailNode(docID string) Node {
	return Node{ID: docID, K: zeroKey, Ptr: nil}
}

// linkNode builds a non-tail node pointing at next, carrying the key
// needed to decrypt that next node.
func linkNode(docID string, nextAddr uint32, nextKey [16]byte) Node {
	addr := nextAddr
	return Node{ID: docID, K: nextKey, Ptr: &addr}
}
