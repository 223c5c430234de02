package session

import (
	"github.com/dshills/greenscreen/internal/oia"
)

// Stream-side surface: the order calls a decoded host stream makes. The
// decoder frames the raw bytes into discrete orders elsewhere; this file is
// where those orders land.

// ProcessSetBufferAddress handles an SBA order. On an invalid address the
// screen state is untouched and the error propagates so the decoder can
// raise a negative response to the host.
func (s *Session) ProcessSetBufferAddress(row, col int) error {
	return s.cur.ProcessSetBufferAddress(row, col)
}

// StartField handles a Start-Field order: a field is defined at the current
// buffer address with the given attribute, length and format words, and the
// attribute byte is dispersed at the field's start so the region picks up
// its display intensity.
func (s *Session) StartField(attr byte, length int, ffw1, ffw2, fcw1, fcw2 byte) {
	pos := s.cur.Position()
	s.fields.AddField(pos, attr, length, ffw1, ffw2, fcw1, fcw2)
	if pos >= 0 && pos < s.buf.Len() {
		s.buf.SetAttr(pos, attr)
	}
}

// ClearFormatTable drops every field: the host is sending a new format.
func (s *Session) ClearFormatTable() {
	s.fields.Clear()
}

// WriteText stores an already-decoded text run at the current address,
// advancing it. Writing past the end of the buffer stops silently; the host
// is trusted to address before it writes.
func (s *Session) WriteText(text string) {
	pos := s.cur.Position()
	for _, r := range text {
		if pos < 0 || pos >= s.buf.Len() {
			break
		}
		s.buf.SetChar(pos, r)
		pos++
	}
	if pos >= 0 && pos <= s.buf.Len() {
		// Park the address after the run, the way the write head moves.
		s.cur.SetCursor(pos/s.buf.Cols()+1, pos%s.buf.Cols()+1)
	}
}

// WriteHostData translates a host byte run through the session code page
// and stores it at the current address.
func (s *Session) WriteHostData(data []byte) {
	s.WriteText(string(s.codec.Decode(data)))
}

// SetKeyboardLocked relays a lock/unlock carried in the stream.
func (s *Session) SetKeyboardLocked(locked bool) {
	s.oia.SetKeyboardLocked(locked)
}

// SetInputInhibited relays an inhibit signal carried in the stream.
func (s *Session) SetInputInhibited(reason oia.InhibitReason, whatCode int, message string) {
	if message == "" {
		s.oia.SetInputInhibited(reason, whatCode)
		return
	}
	s.oia.SetInputInhibitedMessage(reason, whatCode, message)
}

// ClearScreen clears every plane, drops the format table, homes the cursor
// and raises the OIA clear notification.
func (s *Session) ClearScreen() {
	s.buf.Clear()
	s.fields.Clear()
	s.cur.Home()
	s.oia.ClearScreen()
}

// Resize adopts a new screen geometry, preserving the overlapping cells.
// The format no longer matches the screen, so the field table clears and
// the cursor homes.
func (s *Session) Resize(rows, cols int) {
	s.buf.Resize(rows, cols)
	s.fields.Clear()
	s.cur.Resize(rows, cols)
	s.cur.Home()
	s.builder.Resize(rows, cols)
}

// SaveErrorLine snapshots the message row before the host borrows it.
func (s *Session) SaveErrorLine() { s.buf.SaveErrorLine() }

// RestoreErrorLine puts the borrowed message row back.
func (s *Session) RestoreErrorLine() { s.buf.RestoreErrorLine() }
