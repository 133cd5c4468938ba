package store

import (
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the gorm handle the server keeps open for the lifetime of the
// process. A *DB is safe for concurrent search requests: after a build,
// every write has already committed and reads share gorm's pooled
// *sql.DB.
type DB struct {
	gorm *gorm.DB
}

// batchSize bounds how many rows a single INSERT statement carries; M can
// be in the hundreds of thousands of table rows, which some drivers
// reject as a single statement.
const batchSize = 500

// Open dials driver ("sqlite" or "postgres") at dsn and migrates the
// schema for ANode, TEntry and DocumentRecord.
func Open(driver, dsn string) (*DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("store: unsupported driver %q (must be sqlite or postgres)", driver)
	}

	g, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}

	if err := g.AutoMigrate(&ANode{}, &TEntry{}, &DocumentRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	slog.Debug("store opened", "driver", driver)
	return &DB{gorm: g}, nil
}

// PutNodes batch-inserts every entry of an Array's underlying map. Callers
// pass entries rather than an *index.Array directly to keep this package
// free of a dependency on internal/index.
func (db *DB) PutNodes(entries map[uint32][]byte) error {
	rows := make([]ANode, 0, len(entries))
	for addr, blob := range entries {
		rows = append(rows, ANode{Address: addr, Blob: blob})
	}
	return db.gorm.CreateInBatches(rows, batchSize).Error
}

// GetNode returns the blob stored at addr, or (nil, false) if absent.
func (db *DB) GetNode(addr uint32) ([]byte, bool, error) {
	var row ANode
	err := db.gorm.First(&row, "address = ?", addr).Error
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Blob, true, nil
}

// PutTable batch-inserts every index->entry pair in a padded Table.
func (db *DB) PutTable(entries map[uint64][20]byte) error {
	rows := make([]TEntry, 0, len(entries))
	for idx, blob := range entries {
		b := blob
		rows = append(rows, TEntry{Index: idx, Blob: b[:]})
	}
	return db.gorm.CreateInBatches(rows, batchSize).Error
}

// GetTEntry returns the masked entry at index, or (nil, false) if absent
// (which should never occur against a correctly padded table).
func (db *DB) GetTEntry(index uint64) ([]byte, bool, error) {
	var row TEntry
	err := db.gorm.First(&row, "idx = ?", index).Error
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Blob, true, nil
}

// PutDocuments batch-inserts a set of encrypted document blobs.
func (db *DB) PutDocuments(documents map[string][]byte) error {
	rows := make([]DocumentRecord, 0, len(documents))
	for id, ct := range documents {
		rows = append(rows, DocumentRecord{ID: id, Ciphertext: ct})
	}
	return db.gorm.CreateInBatches(rows, batchSize).Error
}

// GetDocument returns the encrypted blob for id, or (nil, false) if absent.
func (db *DB) GetDocument(id string) ([]byte, bool, error) {
	var row DocumentRecord
	err := db.gorm.First(&row, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Ciphertext, true, nil
}

func isNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}

// AllNodes loads the full array A into memory. Called once at "serve"
// startup: a fully populated T is at most a few megabytes (spec design
// notes put M=500,009 at ~10MB for T; A is comparably small), trivial to
// hold resident for the process lifetime.
func (db *DB) AllNodes() (map[uint32][]byte, error) {
	var rows []ANode
	if err := db.gorm.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint32][]byte, len(rows))
	for _, r := range rows {
		out[r.Address] = r.Blob
	}
	return out, nil
}

// AllTEntries loads the full table T into memory.
func (db *DB) AllTEntries() (map[uint64][20]byte, error) {
	var rows []TEntry
	if err := db.gorm.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64][20]byte, len(rows))
	for _, r := range rows {
		var e [20]byte
		copy(e[:], r.Blob)
		out[r.Index] = e
	}
	return out, nil
}
