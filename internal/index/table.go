package index

import (
	"crypto/rand"
	"io"
)

// EntrySize is the width of every T entry: 4 bytes of big-endian address
// plus a 16-byte key.
const EntrySize = 20

// Table is the server-visible mapping index -> 20-byte masked blob. After
// Pad, every index in [0, M) is populated — this is mandatory, since an
// unpopulated slot would leak which indices correspond to real keywords
// and therefore the number of distinct keywords in the index.
type Table struct {
	m       uint64
	entries map[uint64][EntrySize]byte
}

// NewTable returns an empty Table sized for m indices.
func NewTable(m uint64) *Table {
	return &Table{m: m, entries: make(map[uint64][EntrySize]byte)}
}

// NewTableFromEntries wraps an already-populated index->entry map, as
// loaded back from persistent storage.
func NewTableFromEntries(m uint64, entries map[uint64][EntrySize]byte) *Table {
	return &Table{m: m, entries: entries}
}

// M returns the table's fixed address-space size.
func (t *Table) M() uint64 { return t.m }

// Set stores the masked entry at index (must be < M).
func (t *Table) Set(index uint64, entry [EntrySize]byte) {
	t.entries[index] = entry
}

// Get returns the entry at index, or (zero, false) if absent. After Pad
// this only returns false for index >= M.
func (t *Table) Get(index uint64) ([EntrySize]byte, bool) {
	e, ok := t.entries[index]
	return e, ok
}

// Len returns the number of populated indices.
func (t *Table) Len() int { return len(t.entries) }

// Entries exposes the underlying map for persistence layers that need to
// iterate the whole table (e.g. to batch-insert into storage).
func (t *Table) Entries() map[uint64][EntrySize]byte {
	return t.entries
}

// Pad fills every index in [0, M) not already set with EntrySize
// uniformly random bytes, using rnd as the randomness source (nil means
// crypto/rand.Reader). This must run once, after all real keyword entries
// have been written, and must fill the full EntrySize — a shorter padding
// entry leaks real-vs-padding by size alone.
func (t *Table) Pad(rnd io.Reader) error {
	if rnd == nil {
		rnd = rand.Reader
	}
	for i := uint64(0); i < t.m; i++ {
		if _, ok := t.entries[i]; ok {
			continue
		}
		var e [EntrySize]byte
		if _, err := io.ReadFull(rnd, e[:]); err != nil {
			return err
		}
		t.entries[i] = e
	}
	return nil
}
