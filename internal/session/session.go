// Package session owns one emulated display: the screen buffer, format
// table, cursor and OIA of a single host session, and the two surfaces that
// drive them. The stream decoder applies host orders; input handling applies
// user events under keyboard-lock gating. An attention key serializes the
// session state into a host-bound response.
//
// Sessions are single-threaded: no method blocks, and a host driving one
// session from several goroutines must serialize access itself. Separate
// sessions share nothing.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/greenscreen/internal/aid"
	"github.com/dshills/greenscreen/internal/charset"
	"github.com/dshills/greenscreen/internal/cursor"
	"github.com/dshills/greenscreen/internal/display"
	"github.com/dshills/greenscreen/internal/field"
	"github.com/dshills/greenscreen/internal/oia"
)

// Rejection errors for input-side operations.
var (
	ErrKeyboardLocked = errors.New("keyboard locked")
	ErrNoSuchField    = errors.New("no such field")
)

// Session is one terminal session's complete screen/protocol state.
type Session struct {
	id      uuid.UUID
	buf     *display.Buffer
	fields  *field.Table
	cur     *cursor.Model
	oia     *oia.OIA
	builder *aid.Builder
	codec   *charset.Codec

	responseFormat aid.Format
}

// Option configures a session.
type Option func(*Session) error

// WithCodePage selects the EBCDIC translation table. Default CP037.
func WithCodePage(name string) Option {
	return func(s *Session) error {
		c, err := charset.ByName(name)
		if err != nil {
			return err
		}
		s.codec = c
		return nil
	}
}

// WithResponseFormat selects long or structured AID responses.
func WithResponseFormat(f aid.Format) Option {
	return func(s *Session) error {
		s.responseFormat = f
		return nil
	}
}

// WithErrorLine places the message line on a 1-based row.
func WithErrorLine(row int) Option {
	return func(s *Session) error {
		s.buf.SetErrorLine(row - 1)
		return nil
	}
}

// New creates a session with a rows-by-cols display.
func New(rows, cols int, opts ...Option) (*Session, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("invalid geometry %dx%d", rows, cols)
	}

	s := &Session{
		id:  uuid.New(),
		buf: display.New(rows, cols),
		oia: oia.New(),
	}
	s.fields = field.NewTable(s.buf)
	s.cur = cursor.New(rows, cols, s.oia)

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.codec == nil {
		s.codec, _ = charset.ByName(charset.DefaultCodePage)
	}
	s.builder = aid.NewBuilder(rows, cols,
		aid.WithFormat(s.responseFormat), aid.WithCodec(s.codec))
	return s, nil
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID { return s.id }

// Buffer exposes the display planes for renderers. Read-only by contract.
func (s *Session) Buffer() *display.Buffer { return s.buf }

// Fields exposes the format table.
func (s *Session) Fields() *field.Table { return s.fields }

// Cursor exposes the cursor model.
func (s *Session) Cursor() *cursor.Model { return s.cur }

// OIA exposes the operator information area. Renderers subscribe to it
// instead of polling.
func (s *Session) OIA() *oia.OIA { return s.oia }
