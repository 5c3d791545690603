package kv

import (
	"errors"
	"fmt"

	"github.com/leftmike/txkv/storage"
)

var (
	ErrNoTransaction = errors.New("kv: no active transaction")
	ErrKeyNotFound   = errors.New("kv: key not found")
)

type DB struct {
	st     storage.Store
	layers []layer
}

// New returns a DB over st. The DB takes ownership of st.
func New(st storage.Store) *DB {
	return &DB{
		st: st,
	}
}

func (db *DB) top() layer {
	if len(db.layers) == 0 {
		return nil
	}
	return db.layers[len(db.layers)-1]
}

// Depth is the number of open transactions; zero means writes go directly to the store.
func (db *DB) Depth() int {
	return len(db.layers)
}

func (db *DB) Set(key, val string) {
	if top := db.top(); top != nil {
		top[key] = stringValue(val)
		return
	}
	db.st.Set(key, val)
}

func (db *DB) Get(key string) (string, bool) {
	if top := db.top(); top != nil {
		val := top.lookup(key)
		switch val.kind {
		case kindPresent:
			return val.str, true
		case kindTombstone:
			return "", false
		}
	}
	return db.st.Get(key)
}

// Unset deletes key. Inside a transaction it always succeeds by recording a tombstone, even if
// the key does not exist anywhere.
func (db *DB) Unset(key string) error {
	if top := db.top(); top != nil {
		top[key] = tombstone
		return nil
	}
	if !db.st.Delete(key) {
		return fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return nil
}

// NumEqualTo counts the keys whose effective value is val.
func (db *DB) NumEqualTo(val string) int {
	cnt := db.st.CountEqual(val)

	for key, lv := range db.top() {
		if bv, ok := db.st.Get(key); ok && bv == val {
			cnt -= 1
		}
		if lv.kind == kindPresent && lv.str == val {
			cnt += 1
		}
	}
	return cnt
}

// Ascend calls fn for each key of the effective view in key order until fn returns false.
func (db *DB) Ascend(fn func(key, val string) bool) {
	top := db.top()
	if top == nil {
		db.st.Ascend(fn)
		return
	}

	keys := top.sortedKeys()
	emit := func(key string) bool {
		lv := top[key]
		if lv.kind != kindPresent {
			return true
		}
		return fn(key, lv.str)
	}

	var kdx int
	stopped := false
	db.st.Ascend(
		func(key, val string) bool {
			for kdx < len(keys) && keys[kdx] < key {
				if !emit(keys[kdx]) {
					stopped = true
					return false
				}
				kdx += 1
			}

			if kdx < len(keys) && keys[kdx] == key {
				kdx += 1
				if !emit(key) {
					stopped = true
					return false
				}
				return true
			}

			if !fn(key, val) {
				stopped = true
				return false
			}
			return true
		})

	for !stopped && kdx < len(keys) {
		if !emit(keys[kdx]) {
			break
		}
		kdx += 1
	}
}

func (db *DB) Begin() {
	var l layer
	if top := db.top(); top != nil {
		l = top.clone()
	} else {
		l = layer{}
	}
	db.layers = append(db.layers, l)
}

func (db *DB) Rollback() error {
	if len(db.layers) == 0 {
		return ErrNoTransaction
	}

	db.layers[len(db.layers)-1] = nil
	db.layers = db.layers[:len(db.layers)-1]
	return nil
}

// Commit applies every open transaction to the store at once.
func (db *DB) Commit() error {
	top := db.top()
	if top == nil {
		return ErrNoTransaction
	}

	top.apply(db.st)
	db.layers = nil
	return nil
}

func (db *DB) Close() error {
	db.layers = nil
	return db.st.Close()
}
