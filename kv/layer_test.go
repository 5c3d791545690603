package kv

import (
	"testing"

	"github.com/leftmike/txkv/storage"
)

func TestLayer(t *testing.T) {
	l := layer{}
	if v := l.lookup("a"); v.kind != kindAbsent {
		t.Errorf("lookup(a) got %s want absent", v.kind)
	}

	l["a"] = stringValue("10")
	l["b"] = tombstone
	c := l.clone()
	c["a"] = stringValue("20")
	c["c"] = stringValue("30")
	if v := l.lookup("a"); v.kind != kindPresent || v.str != "10" {
		t.Errorf("lookup(a) after clone got %s want 10", v)
	}
	if v := l.lookup("c"); v.kind != kindAbsent {
		t.Errorf("lookup(c) after clone got %s want absent", v)
	}
	if v := c.lookup("b"); v.kind != kindTombstone {
		t.Errorf("clone lookup(b) got %s want tombstone", v.kind)
	}

	keys := c.sortedKeys()
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("sortedKeys() got %v want [a b c]", keys)
	}

	st := storage.NewBTreeStore()
	st.Set("b", "old")
	st.Set("d", "40")
	c.apply(st)
	for _, kv := range []struct {
		key string
		val string
		ok  bool
	}{
		{"a", "20", true},
		{"b", "", false},
		{"c", "30", true},
		{"d", "40", true},
	} {
		val, ok := st.Get(kv.key)
		if ok != kv.ok || val != kv.val {
			t.Errorf("Get(%q) after apply got %q %v want %q %v", kv.key, val, ok, kv.val, kv.ok)
		}
	}
}

func TestLayerApplyAbsent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("apply() with an absent value did not panic")
		}
	}()

	l := layer{"a": value{kind: kindAbsent}}
	l.apply(storage.NewBTreeStore())
}
