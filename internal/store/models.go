// Package store persists the index's server-visible artifacts — the
// array A, the table T, and the encrypted documents — behind gorm, the
// same way the teacher persists FDO server state: a small set of models,
// one init function per supported driver, and narrow CRUD helpers rather
// than a generic repository.
package store

// ANode is one row of the array A: an address and its opaque encrypted
// node blob. Address is the primary key; Array addresses are unique by
// construction (builder.Build never reuses one).
type ANode struct {
	Address uint32 `gorm:"primaryKey"`
	Blob    []byte `gorm:"not null"`
}

func (ANode) TableName() string { return "a_nodes" }

// TEntry is one row of the masked lookup table T. Index is the primary
// key; after a build every value in [0, M) has a row, real or padding.
type TEntry struct {
	Index uint64 `gorm:"column:idx;primaryKey"`
	Blob  []byte `gorm:"not null;size:20"`
}

func (TEntry) TableName() string { return "t_entries" }

// DocumentRecord is one encrypted document blob, keyed by its document
// identifier.
type DocumentRecord struct {
	ID         string `gorm:"primaryKey"`
	Ciphertext []byte `gorm:"not null"`
}

func (DocumentRecord) TableName() string { return "documents" }
