package transform

import (
	"fmt"
	"sync"
)

// DefaultID is the identifier of the built-in default transformer,
// which decodes records from the catalog's MUS serialization format.
const DefaultID = "mus"

var (
	registryMu sync.RWMutex
	registry   = map[string]Transformer{
		"mus":  MUS{},
		"json": JSON{},
		"text": Text{},
	}
)

// Register makes a transformer available under the given identifier,
// replacing any previous registration.
func Register(id string, t Transformer) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[id] = t
}

// Lookup resolves a transformer by identifier.
func Lookup(id string) (Transformer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	t, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransformer, id)
	}
	return t, nil
}
