package index

// Array is the server-visible sparse mapping from address to an opaque
// AES-CBC-encrypted node blob. Every address is the image of some counter
// value under PRF_int(K1, ctr) mod M; no two nodes share an address.
type Array struct {
	entries map[uint32][]byte
}

// NewArray returns an empty Array.
func NewArray() *Array {
	return &Array{entries: make(map[uint32][]byte)}
}

// NewArrayFromEntries wraps an already-populated address->blob map, as
// loaded back from persistent storage.
func NewArrayFromEntries(entries map[uint32][]byte) *Array {
	return &Array{entries: entries}
}

// Get returns the blob stored at addr, or (nil, false) if unclaimed.
func (a *Array) Get(addr uint32) ([]byte, bool) {
	b, ok := a.entries[addr]
	return b, ok
}

// set stores blob at addr. Callers must only invoke this for addresses
// already reserved by the allocator; it does not itself check for
// collisions.
func (a *Array) set(addr uint32, blob []byte) {
	a.entries[addr] = blob
}

// Len returns the number of claimed addresses.
func (a *Array) Len() int { return len(a.entries) }

// Addresses returns every claimed address, in no particular order.
func (a *Array) Addresses() []uint32 {
	out := make([]uint32, 0, len(a.entries))
	for addr := range a.entries {
		out = append(out, addr)
	}
	return out
}

// Entries exposes the underlying map for persistence layers that need to
// iterate the whole array (e.g. to batch-insert into storage).
func (a *Array) Entries() map[uint32][]byte {
	return a.entries
}
