package aid

import (
	"github.com/dshills/greenscreen/internal/charset"
	"github.com/dshills/greenscreen/internal/cursor"
	"github.com/dshills/greenscreen/internal/field"
	"github.com/dshills/greenscreen/internal/oia"
)

// Builder composes host-bound responses for one session's geometry, format
// and code page.
type Builder struct {
	rows, cols int
	format     Format
	codec      *charset.Codec
}

// Option configures a Builder.
type Option func(*Builder)

// WithFormat selects the field serialization format. Default FormatLong.
func WithFormat(f Format) Option {
	return func(b *Builder) { b.format = f }
}

// WithCodec sets the code page used to translate field data. Default CP037.
func WithCodec(c *charset.Codec) Option {
	return func(b *Builder) { b.codec = c }
}

// NewBuilder creates a builder for a rows-by-cols screen.
func NewBuilder(rows, cols int, opts ...Option) *Builder {
	b := &Builder{rows: rows, cols: cols, format: FormatLong}
	for _, opt := range opts {
		opt(b)
	}
	if b.codec == nil {
		b.codec, _ = charset.ByName(charset.DefaultCodePage)
	}
	return b
}

// Resize adopts a new screen geometry for cursor clamping.
func (b *Builder) Resize(rows, cols int) {
	b.rows = rows
	b.cols = cols
}

// Build serializes a response.
//
// Byte 0 is the attention identifier. When includeCursor is set, bytes 1-2
// are the 0-based cursor row and column, each independently clamped into
// [0, rows-1] and [0, cols-1]; a negative position clamps to 0 rather than
// wrapping. The field payload follows per mode; fields whose every cell is
// still null are skipped, never serialized.
//
// A successful build clears any pending error inhibition on the OIA: the
// attention key is the universal way out of an error state.
func (b *Builder) Build(key Key, cur *cursor.Model, tbl *field.Table, o *oia.OIA, mode Mode, includeCursor bool) []byte {
	out := []byte{byte(key)}

	if includeCursor {
		row := clamp(cur.Row()-1, 0, b.rows-1)
		col := clamp(cur.Col()-1, 0, b.cols-1)
		out = append(out, byte(row), byte(col))
	}

	switch mode {
	case CollectModified:
		for i := 0; i < tbl.Count(); i++ {
			f := tbl.FieldAt(i)
			if f.MDT() && !f.IsEmpty() {
				out = b.appendField(out, f)
			}
		}
	case CollectAll:
		for i := 0; i < tbl.Count(); i++ {
			f := tbl.FieldAt(i)
			if !f.IsEmpty() {
				out = b.appendField(out, f)
			}
		}
	}

	if o != nil && o.InputInhibited() != oia.NotInhibited {
		o.SetInputInhibited(oia.NotInhibited, oia.LevelNotInhibited)
	}

	return out
}

// appendField serializes one field as [locationTag?] length data. The
// location tag appears only in structured format. Data is translated to the
// session code page; the length byte counts translated bytes.
func (b *Builder) appendField(out []byte, f *field.Field) []byte {
	data := b.codec.Encode(f.Text())
	if len(data) > 255 {
		data = data[:255]
	}
	if b.format == FormatStructured {
		out = append(out, locationTag)
	}
	out = append(out, byte(len(data)))
	return append(out, data...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
