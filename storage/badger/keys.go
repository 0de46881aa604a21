package badger

import (
	"fmt"

	"github.com/poiesic/catalogit/core"
)

// Key prefixes for different data types
const (
	catalogRecordPrefix = "catrec"
)

// makeRecordKey generates a key for a catalog record by ID.
func makeRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", catalogRecordPrefix, id))
}

// recordKeyPrefix returns the prefix shared by all record keys,
// used for iteration.
func recordKeyPrefix() []byte {
	return []byte(catalogRecordPrefix + ":")
}
