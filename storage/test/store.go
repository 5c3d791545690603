package test

import (
	"testing"

	"github.com/leftmike/txkv/storage"
	"github.com/leftmike/txkv/testutil"
)

const (
	cmdSet = iota
	cmdGet
	cmdDelete
	cmdCountEqual
	cmdLen
	cmdAscend
)

func fln() testutil.FileLineNumber {
	return testutil.MakeFileLineNumber()
}

type storeCmd struct {
	fln  testutil.FileLineNumber
	cmd  int
	key  string
	val  string
	ok   bool     // Get found the key or Delete removed it
	cnt  int      // Expected CountEqual or Len
	keys []string // Expected keys from Ascend, in order
	vals []string // Expected values from Ascend, in order
	stop int      // Stop Ascend after this many keys; 0 means visit all
}

func testStore(t *testing.T, st storage.Store, cmds []storeCmd) {
	t.Helper()

	for _, cmd := range cmds {
		switch cmd.cmd {
		case cmdSet:
			st.Set(cmd.key, cmd.val)
		case cmdGet:
			val, ok := st.Get(cmd.key)
			if ok != cmd.ok {
				t.Errorf("%sGet(%q) got ok %v want %v", cmd.fln, cmd.key, ok, cmd.ok)
			} else if ok && val != cmd.val {
				t.Errorf("%sGet(%q) got %q want %q", cmd.fln, cmd.key, val, cmd.val)
			}
		case cmdDelete:
			ok := st.Delete(cmd.key)
			if ok != cmd.ok {
				t.Errorf("%sDelete(%q) got %v want %v", cmd.fln, cmd.key, ok, cmd.ok)
			}
		case cmdCountEqual:
			cnt := st.CountEqual(cmd.val)
			if cnt != cmd.cnt {
				t.Errorf("%sCountEqual(%q) got %d want %d", cmd.fln, cmd.val, cnt, cmd.cnt)
			}
		case cmdLen:
			cnt := st.Len()
			if cnt != cmd.cnt {
				t.Errorf("%sLen() got %d want %d", cmd.fln, cnt, cmd.cnt)
			}
		case cmdAscend:
			var keys, vals []string
			st.Ascend(
				func(key, val string) bool {
					keys = append(keys, key)
					vals = append(vals, val)
					return cmd.stop == 0 || len(keys) < cmd.stop
				})
			if !equalStrings(keys, cmd.keys) {
				t.Errorf("%sAscend() got keys %v want %v", cmd.fln, keys, cmd.keys)
			}
			if !equalStrings(vals, cmd.vals) {
				t.Errorf("%sAscend() got values %v want %v", cmd.fln, vals, cmd.vals)
			}
		default:
			panic("unexpected command")
		}
	}
}

func equalStrings(s1, s2 []string) bool {
	if len(s1) != len(s2) {
		return false
	}
	for idx := range s1 {
		if s1[idx] != s2[idx] {
			return false
		}
	}
	return true
}

// RunStoreTest runs the common store checks; st must be empty.
func RunStoreTest(t *testing.T, st storage.Store) {
	t.Helper()

	testStore(t, st,
		[]storeCmd{
			{fln: fln(), cmd: cmdLen, cnt: 0},
			{fln: fln(), cmd: cmdGet, key: "a", ok: false},
			{fln: fln(), cmd: cmdDelete, key: "a", ok: false},
			{fln: fln(), cmd: cmdCountEqual, val: "10", cnt: 0},
			{fln: fln(), cmd: cmdAscend},

			{fln: fln(), cmd: cmdSet, key: "b", val: "10"},
			{fln: fln(), cmd: cmdSet, key: "a", val: "10"},
			{fln: fln(), cmd: cmdSet, key: "c", val: "rama rama"},
			{fln: fln(), cmd: cmdGet, key: "a", val: "10", ok: true},
			{fln: fln(), cmd: cmdGet, key: "c", val: "rama rama", ok: true},
			{fln: fln(), cmd: cmdLen, cnt: 3},
			{fln: fln(), cmd: cmdCountEqual, val: "10", cnt: 2},
			{fln: fln(), cmd: cmdCountEqual, val: "rama", cnt: 0},
			{fln: fln(), cmd: cmdAscend, keys: []string{"a", "b", "c"},
				vals: []string{"10", "10", "rama rama"}},
			{fln: fln(), cmd: cmdAscend, stop: 2, keys: []string{"a", "b"},
				vals: []string{"10", "10"}},

			{fln: fln(), cmd: cmdSet, key: "a", val: "20"},
			{fln: fln(), cmd: cmdGet, key: "a", val: "20", ok: true},
			{fln: fln(), cmd: cmdLen, cnt: 3},
			{fln: fln(), cmd: cmdCountEqual, val: "10", cnt: 1},
			{fln: fln(), cmd: cmdCountEqual, val: "20", cnt: 1},

			{fln: fln(), cmd: cmdDelete, key: "b", ok: true},
			{fln: fln(), cmd: cmdDelete, key: "b", ok: false},
			{fln: fln(), cmd: cmdGet, key: "b", ok: false},
			{fln: fln(), cmd: cmdCountEqual, val: "10", cnt: 0},
			{fln: fln(), cmd: cmdLen, cnt: 2},
			{fln: fln(), cmd: cmdAscend, keys: []string{"a", "c"},
				vals: []string{"20", "rama rama"}},

			{fln: fln(), cmd: cmdSet, key: "empty", val: ""},
			{fln: fln(), cmd: cmdGet, key: "empty", val: "", ok: true},
			{fln: fln(), cmd: cmdCountEqual, val: "", cnt: 1},
			{fln: fln(), cmd: cmdDelete, key: "empty", ok: true},
			{fln: fln(), cmd: cmdCountEqual, val: "", cnt: 0},
		})
}
