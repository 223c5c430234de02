// Package aid encodes the host-bound response that follows an attention
// key: the attention identifier, the cursor report, and the selected field
// payload.
package aid

import (
	"errors"
	"fmt"
)

// Key is an already-encoded attention identifier byte.
type Key byte

// Attention identifiers.
const (
	Enter    Key = 0xF1
	Help     Key = 0xF3
	RollDown Key = 0xF4 // page up
	RollUp   Key = 0xF5 // page down
	Print    Key = 0xF6
	Clear    Key = 0xBD
	PF1      Key = 0x31
	PF12     Key = 0x3C
	PF13     Key = 0xB1
	PF24     Key = 0xBC
)

// ErrBadFunctionKey is returned by PF for keys outside 1-24.
var ErrBadFunctionKey = errors.New("function key out of range")

// PF returns the attention identifier for function key n. F1-F12 encode as
// 0x31-0x3C, F13-F24 as 0xB1-0xBC.
func PF(n int) (Key, error) {
	switch {
	case n >= 1 && n <= 12:
		return Key(0x30 + n), nil
	case n >= 13 && n <= 24:
		return Key(0xB0 + n - 12), nil
	default:
		return 0, fmt.Errorf("%w: F%d", ErrBadFunctionKey, n)
	}
}

// Mode selects which fields are appended to a response.
type Mode int

// Field collection modes.
const (
	// CollectNone appends no field payload.
	CollectNone Mode = iota
	// CollectModified appends fields whose modified-data tag is set.
	CollectModified
	// CollectAll appends every field with non-empty content.
	CollectAll
)

// Format selects the field serialization layout.
type Format int

const (
	// FormatLong serializes each field as length followed by data.
	FormatLong Format = iota
	// FormatStructured prefixes each field with a location-tag byte
	// (high nibble 0xC).
	FormatStructured
)

// locationTag is the structured-format field prefix.
const locationTag = 0xC0
