package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for catalog records.
// It is generated by content-based hashing when the transformer
// does not supply one.
type ID uint64

// IDFromContent generates a deterministic ID from record content using
// BLAKE2b hashing. Identical content produces identical IDs, which lets
// the store reject duplicates on create.
func IDFromContent(data []byte) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Record is the structured unit produced from a source file and
// submitted to the catalog store.
type Record struct {
	Id          ID
	Title       string            // Backfilled from the source file name when blank
	Source      string            // Absolute path of the source file
	ContentType string
	Contents    []byte            // Opaque payload
	Metadata    map[string]string // Optional metadata (e.g., "transformer", "host")
	CreatedAt   time.Time         // When the record was persisted by the store
	ModifiedAt  time.Time         // When the record was last updated
}
