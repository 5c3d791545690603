package kv

import (
	"fmt"
)

type kind uint8

const (
	kindAbsent kind = iota
	kindPresent
	kindTombstone
)

func (k kind) String() string {
	switch k {
	case kindAbsent:
		return "absent"
	case kindPresent:
		return "present"
	case kindTombstone:
		return "tombstone"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// value is the state of a key as seen by one layer. A layer only ever holds present or
// tombstone values; absent means the layer does not mention the key.
type value struct {
	kind kind
	str  string
}

func stringValue(s string) value {
	return value{kind: kindPresent, str: s}
}

var tombstone = value{kind: kindTombstone}

func (v value) String() string {
	switch v.kind {
	case kindPresent:
		return v.str
	case kindTombstone:
		return "<tombstone>"
	}
	return "<absent>"
}
