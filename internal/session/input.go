package session

import (
	"strings"

	"github.com/dshills/greenscreen/internal/aid"
	"github.com/dshills/greenscreen/internal/field"
	"github.com/dshills/greenscreen/internal/oia"
)

// Input-side surface: user (or script-synthesized) events. Everything here
// is gated by the keyboard lock; a locked keyboard rejects immediately
// rather than queueing.

// MoveCursor commits a user cursor movement. False when the keyboard is
// locked or the position is outside the screen.
func (s *Session) MoveCursor(pos int) bool {
	return s.cur.MoveCursor(pos)
}

// GotoField places the cursor on the 1-based indexed field.
func (s *Session) GotoField(index int) bool {
	return s.cur.GotoField(s.fields, index)
}

// NextField tabs to the next non-bypass field, wrapping at the end of the
// table, and returns it. Nil when the keyboard is locked or no field can
// take the cursor.
func (s *Session) NextField() *field.Field {
	if s.oia.KeyboardLocked() {
		return nil
	}
	f := s.fields.NextField()
	if f != nil {
		s.cur.MoveCursor(f.StartPos())
	}
	return f
}

// PrevField back-tabs to the previous non-bypass field, wrapping at the
// start of the table.
func (s *Session) PrevField() *field.Field {
	if s.oia.KeyboardLocked() {
		return nil
	}
	f := s.fields.PrevField()
	if f != nil {
		s.cur.MoveCursor(f.StartPos())
	}
	return f
}

// SetFieldText assigns text to the 1-based indexed field, truncating to the
// field length. Monocase fields fold to upper case; everything else is
// stored verbatim. The field's modified-data tag is set.
func (s *Session) SetFieldText(index int, text string) error {
	if s.oia.KeyboardLocked() {
		return ErrKeyboardLocked
	}
	f := s.fields.FieldAt(index - 1)
	if f == nil {
		return ErrNoSuchField
	}
	if f.IsToUpper() {
		text = strings.ToUpper(text)
	}
	f.SetText(text)
	f.SetMDT()
	return nil
}

// ToggleInsertMode flips the OIA insert-mode indicator.
func (s *Session) ToggleInsertMode() {
	s.oia.SetInsertMode(!s.oia.InsertMode())
}

// PressKey fires an attention key: the response is built from the current
// cursor, field and OIA state, any pending error inhibition clears, and the
// keyboard locks while the host owns the turnaround. Attention keys are the
// way out of an error state, so the lock never rejects them.
func (s *Session) PressKey(key aid.Key, mode aid.Mode, includeCursor bool) []byte {
	resp := s.builder.Build(key, s.cur, s.fields, s.oia, mode, includeCursor)
	s.oia.SetKeyboardLocked(true)
	return resp
}

// ResetMDT clears every field's modified-data tag, typically after the host
// acknowledges a submission.
func (s *Session) ResetMDT() {
	s.fields.ResetMDT()
}

// InhibitReason re-exports the OIA query for automation clients that hold
// only the session.
func (s *Session) InhibitReason() oia.InhibitReason {
	return s.oia.InputInhibited()
}
