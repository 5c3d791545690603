package kv_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/leftmike/txkv/kv"
	"github.com/leftmike/txkv/storage"
)

const (
	opSet = iota
	opUnset
	opBegin
	opRollback
	numOps
)

var (
	propKeys  = []string{"a", "b", "c", "d"}
	unsetKeys = []string{"a", "b", "c", "d", "x"}
)

func decodeOp(op int) (int, string, string) {
	return op % numOps, propKeys[(op/numOps)%len(propKeys)],
		strconv.Itoa(op / (numOps * len(propKeys)))
}

// runOps applies ops, never letting Rollback drop below minDepth.
func runOps(db *kv.DB, ops []int, minDepth int) {
	for _, op := range ops {
		kind, key, val := decodeOp(op)
		switch kind {
		case opSet:
			db.Set(key, val)
		case opUnset:
			db.Unset(key)
		case opBegin:
			db.Begin()
		case opRollback:
			if db.Depth() > minDepth {
				db.Rollback()
			}
		}
	}
}

func snapshot(db *kv.DB) string {
	var b strings.Builder
	db.Ascend(
		func(key, val string) bool {
			fmt.Fprintf(&b, "%s=%s ", key, val)
			return true
		})
	for _, key := range propKeys {
		val, ok := db.Get(key)
		fmt.Fprintf(&b, "get(%s)=%s,%v ", key, val, ok)
	}
	for val := 0; val < 3; val++ {
		fmt.Fprintf(&b, "num(%d)=%d ", val, db.NumEqualTo(strconv.Itoa(val)))
	}
	return b.String()
}

func TestProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 40

	properties := gopter.NewProperties(parameters)

	properties.Property("get returns the value just set at any depth", prop.ForAll(
		func(pre []int, depth int, key, val string) bool {
			db := kv.New(storage.NewBTreeStore())
			runOps(db, pre, 0)
			for db.Depth() < depth {
				db.Begin()
			}

			db.Set(key, val)
			got, ok := db.Get(key)
			return ok && got == val
		},
		gen.SliceOf(gen.IntRange(0, 59)),
		gen.IntRange(0, 4),
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.Property("get after unset is absent at any depth", prop.ForAll(
		func(pre []int, depth, kdx int) bool {
			key := unsetKeys[kdx]
			db := kv.New(storage.NewBTreeStore())
			db.Set(key, "x")
			runOps(db, pre, 0)
			for db.Depth() < depth {
				db.Begin()
			}

			db.Unset(key)
			_, ok := db.Get(key)
			return !ok && db.NumEqualTo("x") == 0
		},
		gen.SliceOf(gen.IntRange(0, 59)),
		gen.IntRange(0, 4),
		gen.IntRange(0, len(unsetKeys)-1),
	))

	properties.Property("rollback restores the state before begin", prop.ForAll(
		func(pre, outer, ops []int, nested bool) bool {
			db := kv.New(storage.NewBTreeStore())
			runOps(db, pre, 0)
			for db.Depth() > 0 {
				db.Rollback()
			}
			if nested {
				db.Begin()
				runOps(db, outer, 1)
			}

			before := snapshot(db)
			depth := db.Depth()

			db.Begin()
			runOps(db, ops, depth+1)
			for db.Depth() > depth+1 {
				db.Rollback()
			}
			if err := db.Rollback(); err != nil {
				return false
			}

			return db.Depth() == depth && snapshot(db) == before
		},
		gen.SliceOf(gen.IntRange(0, 59)),
		gen.SliceOf(gen.IntRange(0, 59)),
		gen.SliceOf(gen.IntRange(0, 59)),
		gen.Bool(),
	))

	properties.Property("commit matches the view of the top layer", prop.ForAll(
		func(pre, ops []int) bool {
			db := kv.New(storage.NewBTreeStore())
			runOps(db, pre, 0)
			for db.Depth() > 0 {
				db.Rollback()
			}

			db.Begin()
			runOps(db, ops, 1)
			view := snapshot(db)
			if err := db.Commit(); err != nil {
				return false
			}

			return db.Depth() == 0 && snapshot(db) == view
		},
		gen.SliceOf(gen.IntRange(0, 59)),
		gen.SliceOf(gen.IntRange(0, 59)),
	))

	properties.TestingRun(t)
}
