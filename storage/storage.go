package storage

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Store is the committed key-value mapping underneath the transaction stack. Implementations
// are only ever used by a single caller.
type Store interface {
	Get(key string) (string, bool)
	Set(key, val string)
	Delete(key string) bool
	CountEqual(val string) int

	// Ascend calls fn for each key in order until fn returns false.
	Ascend(fn func(key, val string) bool)

	Len() int
	Close() error
}

// Open creates an empty store using the named backend.
func Open(name string, logger *log.Logger) (Store, error) {
	switch name {
	case "btree":
		return NewBTreeStore(), nil
	case "pebble":
		return NewPebbleStore(logger)
	default:
		return nil, fmt.Errorf("storage: got %s for store; want btree or pebble", name)
	}
}
