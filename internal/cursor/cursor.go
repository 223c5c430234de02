// Package cursor implements the buffer-addressing side of the display:
// linear position arithmetic, Set-Buffer-Address validation, and
// lock-gated movement.
package cursor

import (
	"errors"

	"github.com/dshills/greenscreen/internal/field"
)

// ErrInvalidAddress is returned when a Set-Buffer-Address order names a row
// or column outside the screen. The cursor is left untouched.
var ErrInvalidAddress = errors.New("buffer address out of range")

// LockState gates user-driven movement. The OIA satisfies it.
type LockState interface {
	KeyboardLocked() bool
}

// unlocked is the gate used when no lock state is wired in.
type unlocked struct{}

func (unlocked) KeyboardLocked() bool { return false }

// Model tracks the cursor of one session. Position is a signed linear
// offset: SetCursor applies no clamping, so row or column 0 legitimately
// produce negative values (see SetCursor).
//
// Not safe for concurrent use.
type Model struct {
	rows, cols int
	pos        int
	active     bool
	visible    bool
	lock       LockState
}

// New creates a cursor model for a rows-by-cols screen, gated by lock.
// A nil lock means never locked.
func New(rows, cols int, lock LockState) *Model {
	if lock == nil {
		lock = unlocked{}
	}
	return &Model{rows: rows, cols: cols, lock: lock, active: true, visible: true}
}

// Rows returns the screen row count.
func (m *Model) Rows() int { return m.rows }

// Cols returns the screen column count.
func (m *Model) Cols() int { return m.cols }

// Position returns the current linear position.
func (m *Model) Position() int { return m.pos }

// Row returns the 1-based row of the current position.
func (m *Model) Row() int { return m.pos/m.cols + 1 }

// Col returns the 1-based column of the current position.
func (m *Model) Col() int { return m.pos%m.cols + 1 }

// SetCursor places the cursor from a 1-based row and column with no
// validation: position = (row-1)*cols + (col-1). Row or column 0 yields a
// negative position; values past the screen yield positions past the buffer.
// Callers that need safety must validate first (ProcessSetBufferAddress
// does) or clamp before touching the planes.
func (m *Model) SetCursor(row, col int) {
	m.pos = (row-1)*m.cols + (col - 1)
}

// Home places the cursor at position 0 (row 1, column 1 on any geometry).
func (m *Model) Home() { m.pos = 0 }

// MoveCursor commits a new position for user-driven movement. It reports
// false, changing nothing, when the keyboard is locked, the position is
// negative, or the position is at or past the buffer length. The upper
// bound is enforced deliberately and uniformly: trusting the caller here
// lets a bad position fault in the planes downstream.
func (m *Model) MoveCursor(pos int) bool {
	if m.lock.KeyboardLocked() {
		return false
	}
	if pos < 0 || pos >= m.rows*m.cols {
		return false
	}
	m.pos = pos
	return true
}

// ProcessSetBufferAddress handles an SBA order. Row and column are 1-based
// and validated against the screen; on failure the cursor is left
// bit-for-bit untouched and ErrInvalidAddress is returned. SBA comes from
// the host, so it is not gated by the keyboard lock.
func (m *Model) ProcessSetBufferAddress(row, col int) error {
	if row < 1 || row > m.rows || col < 1 || col > m.cols {
		return ErrInvalidAddress
	}
	m.SetCursor(row, col)
	return nil
}

// GotoField places the cursor at the start of the 1-based indexed field.
// It reports false for indexes at or below zero, indexes past the field
// count, or a locked keyboard.
func (m *Model) GotoField(tbl *field.Table, index int) bool {
	if m.lock.KeyboardLocked() {
		return false
	}
	if index <= 0 || index > tbl.Count() {
		return false
	}
	f := tbl.FieldAt(index - 1)
	m.pos = f.StartPos()
	tbl.SetCurrentIndex(index - 1)
	return true
}

// Resize adopts a new screen geometry. The position is not translated; the
// caller re-homes or re-addresses after a format change.
func (m *Model) Resize(rows, cols int) {
	m.rows = rows
	m.cols = cols
}

// Active reports whether the cursor participates in input.
func (m *Model) Active() bool { return m.active }

// SetActive toggles cursor activity. Independent of position and lock.
func (m *Model) SetActive(active bool) { m.active = active }

// Visible reports whether a renderer should paint the cursor.
func (m *Model) Visible() bool { return m.visible }

// SetVisible toggles cursor visibility. Independent of position and lock.
func (m *Model) SetVisible(visible bool) { m.visible = visible }
