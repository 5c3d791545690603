package storage

import (
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	log "github.com/sirupsen/logrus"
)

// pebbleStore keeps pebble on an in-memory filesystem; nothing is written to disk.
type pebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(logger *log.Logger) (Store, error) {
	opts := &pebble.Options{
		FS: vfs.NewMem(),
	}
	if logger != nil {
		opts.Logger = logger
	}

	db, err := pebble.Open("txkv", opts)
	if err != nil {
		return nil, fmt.Errorf("storage: pebble: %s", err)
	}
	return &pebbleStore{
		db: db,
	}, nil
}

func pebblePanic(op string, err error) {
	panic(fmt.Sprintf("storage: pebble: %s: %s", op, err))
}

func (pst *pebbleStore) Get(key string) (string, bool) {
	val, closer, err := pst.db.Get([]byte(key))
	if err == pebble.ErrNotFound {
		return "", false
	} else if err != nil {
		pebblePanic("get", err)
	}
	defer closer.Close()

	return string(val), true
}

func (pst *pebbleStore) Set(key, val string) {
	err := pst.db.Set([]byte(key), []byte(val), pebble.NoSync)
	if err != nil {
		pebblePanic("set", err)
	}
}

func (pst *pebbleStore) Delete(key string) bool {
	if _, ok := pst.Get(key); !ok {
		return false
	}

	err := pst.db.Delete([]byte(key), pebble.NoSync)
	if err != nil {
		pebblePanic("delete", err)
	}
	return true
}

func (pst *pebbleStore) iterate(fn func(key, val []byte) bool) {
	it := pst.db.NewIter(nil)
	for valid := it.First(); valid; valid = it.Next() {
		if !fn(it.Key(), it.Value()) {
			break
		}
	}

	err := it.Close()
	if err != nil {
		pebblePanic("iterate", err)
	}
}

func (pst *pebbleStore) CountEqual(val string) int {
	var cnt int
	pst.iterate(
		func(_, v []byte) bool {
			if string(v) == val {
				cnt += 1
			}
			return true
		})
	return cnt
}

func (pst *pebbleStore) Ascend(fn func(key, val string) bool) {
	pst.iterate(
		func(k, v []byte) bool {
			return fn(string(k), string(v))
		})
}

func (pst *pebbleStore) Len() int {
	var cnt int
	pst.iterate(
		func(_, _ []byte) bool {
			cnt += 1
			return true
		})
	return cnt
}

func (pst *pebbleStore) Close() error {
	return pst.db.Close()
}
