package kv

import (
	"sort"

	"github.com/leftmike/txkv/storage"
)

type layer map[string]value

func (l layer) clone() layer {
	c := make(layer, len(l))
	for key, val := range l {
		c[key] = val
	}
	return c
}

func (l layer) lookup(key string) value {
	val, ok := l[key]
	if !ok {
		return value{kind: kindAbsent}
	}
	return val
}

// apply writes the layer onto st: present values are set and tombstoned keys are deleted.
func (l layer) apply(st storage.Store) {
	for key, val := range l {
		switch val.kind {
		case kindPresent:
			st.Set(key, val.str)
		case kindTombstone:
			st.Delete(key)
		default:
			panic("kv: absent value in layer: " + key)
		}
	}
}

func (l layer) sortedKeys() []string {
	keys := make([]string, 0, len(l))
	for key := range l {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
