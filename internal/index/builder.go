// Package index implements the encrypted inverted index: the randomly
// addressed linked-list array A, the masked lookup table T, and the
// builder that populates both from a client's keyword/document
// relationships.
package index

import (
	"crypto/rand"
	"fmt"
	"io"
	"strconv"

	"github.com/sseindex/sseindex-server/internal/keys"
	"github.com/sseindex/sseindex-server/internal/sseerr"
	"github.com/sseindex/sseindex-server/internal/ssecrypto"
)

// loadFactorLimit bounds Σ|postings| as a fraction of M; above it,
// address probing stops being expected-constant and Build refuses to run.
const loadFactorLimit = 0.9

// DocKeywords is one document's keyword list, in the order the caller
// wants it folded into the index. A build's address assignment is a
// deterministic function of iteration order over documents and over each
// document's keywords, so callers MUST pass a fixed, reproducible order
// (e.g. the order keywords were extracted) rather than a Go map, whose
// iteration order is randomized.
type DocKeywords struct {
	DocID    string
	Keywords []string
}

// Builder builds (A, T) from a client's keys and a fixed table size M.
type Builder struct {
	keys    *keys.ClientKeys
	m       uint64
	counter uint64
	rnd     io.Reader
}

// NewBuilder returns a Builder for the given keys and table size. rnd is
// the randomness source for fresh per-node keys and T padding; nil means
// crypto/rand.Reader.
func NewBuilder(k *keys.ClientKeys, m uint64, rnd io.Reader) *Builder {
	if rnd == nil {
		rnd = rand.Reader
	}
	return &Builder{keys: k, m: m, counter: 1, rnd: rnd}
}

// Build inverts docs into keyword -> postings, then constructs one
// encrypted chain per keyword in A and one masked entry per keyword in T,
// padding every remaining T slot with uniform random bytes. It returns an
// IndexCapacityError, before touching A or T, if the total posting count
// is too close to M for probing to stay expected-constant.
func (b *Builder) Build(docs []DocKeywords) (*Array, *Table, error) {
	order, postings := invert(docs)

	total := 0
	for _, ids := range postings {
		total += len(ids)
	}
	if float64(total) > loadFactorLimit*float64(b.m) {
		return nil, nil, &sseerr.IndexCapacityError{Postings: total, M: b.m}
	}

	array := NewArray()
	table := NewTable(b.m)

	for _, w := range order {
		docIDs := postings[w]
		if err := b.buildChain(array, table, w, docIDs); err != nil {
			return nil, nil, err
		}
	}

	if err := table.Pad(b.rnd); err != nil {
		return nil, nil, err
	}
	return array, table, nil
}

// invert folds docs (doc_id -> keywords) into keyword -> ordered posting
// list, preserving the first-seen order of keywords and the append order
// of doc ids within each posting list.
func invert(docs []DocKeywords) (order []string, postings map[string][]string) {
	postings = make(map[string][]string)
	for _, d := range docs {
		for _, w := range d.Keywords {
			if _, ok := postings[w]; !ok {
				order = append(order, w)
			}
			postings[w] = append(postings[w], d.DocID)
		}
	}
	return order, postings
}

// buildChain allocates the chain of nodes for one keyword's posting list
// and writes the corresponding masked entry into table.
//
// Addressing is two-pass to avoid the brittleness of committing a
// forward-referenced pointer before the pointee's address is known: pass
// one reserves every node's address (claiming a tombstone in A so no
// later probe, in this chain or any other keyword's, can collide with
// it); pass two fills in each node's content — including the *real*
// address of its successor — and encrypts it.
func (b *Builder) buildChain(array *Array, table *Table, keyword string, docIDs []string) error {
	n := len(docIDs)
	if n == 0 {
		return nil
	}

	addrs := make([]uint32, n)
	for j := 0; j < n; j++ {
		addr, err := b.reserveAddress(array)
		if err != nil {
			return err
		}
		addrs[j] = addr
	}

	var head [16]byte
	if _, err := io.ReadFull(b.rnd, head[:]); err != nil {
		return err
	}

	// linkKeys[j] is the key embedded in node j to decrypt node j+1, for
	// j in [0, n-2]; node n-1 has no successor.
	linkKeys := make([][16]byte, n-1)
	for j := range linkKeys {
		if _, err := io.ReadFull(b.rnd, linkKeys[j][:]); err != nil {
			return err
		}
	}

	for j := 0; j < n; j++ {
		var node Node
		if j == n-1 {
			node = tailNode(docIDs[j])
		} else {
			node = linkNode(docIDs[j], addrs[j+1], linkKeys[j])
		}

		encKey := head
		if j > 0 {
			encKey = linkKeys[j-1]
		}

		plain, err := node.MarshalJSON()
		if err != nil {
			return err
		}
		blob, err := ssecrypto.SKEEncrypt(encKey[:], plain)
		if err != nil {
			return err
		}
		array.set(addrs[j], blob)
	}

	var entryPlain [EntrySize]byte
	putBE32(entryPlain[:4], addrs[0])
	copy(entryPlain[4:], head[:])

	mask := ssecrypto.PRFBytes(b.keys.K2[:], keyword, EntrySize)
	var masked [EntrySize]byte
	for i := range masked {
		masked[i] = entryPlain[i] ^ mask[i]
	}

	index := ssecrypto.PRFIntMod(b.keys.K3[:], keyword, b.m)
	table.Set(index, masked)
	return nil
}

// reserveAddress probes PRF_int(K1, counter) mod M starting from the
// builder's current counter, claiming (with a nil tombstone blob) the
// first address not already present in array, and commits the counter
// just past it.
func (b *Builder) reserveAddress(array *Array) (uint32, error) {
	c := b.counter
	for {
		addr64 := ssecrypto.PRFIntMod(b.keys.K1[:], strconv.FormatUint(c, 10), b.m)
		addr := uint32(addr64)
		if _, claimed := array.Get(addr); !claimed {
			array.set(addr, nil) // tombstone; overwritten in pass two
			b.counter = c + 1
			return addr, nil
		}
		c++
		if c-b.counter > b.m*2 {
			return 0, fmt.Errorf("sse: address probing failed to terminate within 2M steps")
		}
	}
}

func putBE32(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}
