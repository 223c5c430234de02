// Package field defines the 5250 field table: the ordered set of
// protected/unprotected regions a Start-Field order lays over the display,
// their format-word decoding, and navigation between them.
package field

import "github.com/dshills/greenscreen/internal/display"

// Shift is a field's shift/edit type, decoded once from the low three bits
// of FFW1 when the field is created.
type Shift int

// Shift types.
const (
	ShiftAlpha Shift = iota
	ShiftBoth
	ShiftNumeric
	ShiftHidden
	ShiftBypass
	ShiftSigned
)

// String returns the shift-type name.
func (s Shift) String() string {
	switch s {
	case ShiftAlpha:
		return "alpha"
	case ShiftBoth:
		return "both"
	case ShiftNumeric:
		return "numeric"
	case ShiftHidden:
		return "hidden"
	case ShiftBypass:
		return "bypass"
	case ShiftSigned:
		return "signed-numeric"
	default:
		return "unknown"
	}
}

func decodeShift(ffw1 byte) Shift {
	switch ffw1 & 0x07 {
	case 0, 1:
		return ShiftAlpha
	case 2:
		return ShiftBoth
	case 3, 5:
		return ShiftNumeric
	case 4:
		return ShiftHidden
	case 6:
		return ShiftBypass
	default:
		return ShiftSigned
	}
}

// FFW1 flag bits.
const (
	ffw1Bypass byte = 0x20
	ffw1Dup    byte = 0x10
	ffw1MDT    byte = 0x08
)

// FFW2 flag bits.
const (
	ffw2AutoEnter byte = 0x80
	ffw2FER       byte = 0x40
	ffw2Monocase  byte = 0x20
	ffw2Mandatory byte = 0x08
	ffw2AdjustMsk byte = 0x07
)

// FCW selector bytes.
const (
	fcwContinued  byte = 0x86
	fcwCursorProg byte = 0x88
)

// Continued-field markers carried in the low FCW byte.
const (
	contFirst  byte = 0x01
	contLast   byte = 0x02
	contMiddle byte = 0x03
)

// Field is one entry of the format table. Its text content lives in the
// display's character plane; the field only records its extent and decoded
// format words.
type Field struct {
	buf *display.Buffer

	startPos int
	length   int

	attr       byte
	ffw1, ffw2 byte
	fcw1, fcw2 byte

	shift      Shift
	mdt        bool
	cursorProg byte
}

func newField(buf *display.Buffer, startPos int, attr byte, length int, ffw1, ffw2, fcw1, fcw2 byte) *Field {
	if length < 0 {
		length = 0
	}
	f := &Field{
		buf:      buf,
		startPos: startPos,
		length:   length,
		attr:     attr,
		ffw1:     ffw1,
		ffw2:     ffw2,
		fcw1:     fcw1,
		fcw2:     fcw2,
		shift:    decodeShift(ffw1),
		mdt:      ffw1&ffw1MDT != 0,
	}
	if fcw1 == fcwCursorProg {
		f.cursorProg = fcw2
	}
	return f
}

// StartPos returns the 0-based linear start offset.
func (f *Field) StartPos() int { return f.startPos }

// EndPos returns startPos+length-1. A zero-length field's end precedes its
// start; such fields are position markers and contain no position.
func (f *Field) EndPos() int { return f.startPos + f.length - 1 }

// Length returns the field length in cells. Zero is permitted.
func (f *Field) Length() int { return f.length }

// Attr returns the display attribute byte carried by the Start-Field order.
func (f *Field) Attr() byte { return f.attr }

// Shift returns the decoded shift type.
func (f *Field) Shift() Shift { return f.shift }

// Contains reports whether pos falls inside the field extent.
func (f *Field) Contains(pos int) bool {
	return f.length > 0 && pos >= f.startPos && pos <= f.EndPos()
}

// IsBypass reports whether the cursor must skip this field on entry.
func (f *Field) IsBypass() bool { return f.ffw1&ffw1Bypass != 0 }

// IsNumeric reports a numeric-only field. Signed-numeric is a distinct
// shift type and reports false here.
func (f *Field) IsNumeric() bool { return f.shift == ShiftNumeric }

// IsSignedNumeric reports a signed-numeric field.
func (f *Field) IsSignedNumeric() bool { return f.shift == ShiftSigned }

// IsMandatoryEnter reports whether the field must be entered before the
// format can be submitted.
func (f *Field) IsMandatoryEnter() bool { return f.ffw2&ffw2Mandatory != 0 }

// IsFER reports whether field-exit is required to leave the field.
func (f *Field) IsFER() bool { return f.ffw2&ffw2FER != 0 }

// IsDupEnabled reports whether the Dup key is allowed in the field.
func (f *Field) IsDupEnabled() bool { return f.ffw1&ffw1Dup != 0 }

// IsToUpper reports whether entered text is folded to upper case.
func (f *Field) IsToUpper() bool { return f.ffw2&ffw2Monocase != 0 }

// IsAutoEnter reports whether filling the field submits the format.
func (f *Field) IsAutoEnter() bool { return f.ffw2&ffw2AutoEnter != 0 }

// IsContinued reports whether the field is a segment of a continued field.
func (f *Field) IsContinued() bool { return f.fcw1 == fcwContinued }

// IsContinuedFirst reports the first segment of a continued field.
func (f *Field) IsContinuedFirst() bool {
	return f.IsContinued() && f.fcw2&contMiddle == contFirst
}

// IsContinuedMiddle reports a middle segment of a continued field.
func (f *Field) IsContinuedMiddle() bool {
	return f.IsContinued() && f.fcw2&contMiddle == contMiddle
}

// IsContinuedLast reports the last segment of a continued field.
func (f *Field) IsContinuedLast() bool {
	return f.IsContinued() && f.fcw2&contMiddle == contLast
}

// Adjustment returns the mandatory-fill/adjust code from the low three bits
// of FFW2.
func (f *Field) Adjustment() byte { return f.ffw2 & ffw2AdjustMsk }

// CursorProgression returns the explicit next-field id, or 0 when the field
// uses table order.
func (f *Field) CursorProgression() byte { return f.cursorProg }

// MDT reports the modified-data tag.
func (f *Field) MDT() bool { return f.mdt }

// SetMDT marks the field modified.
func (f *Field) SetMDT() { f.mdt = true }

// ResetMDT clears the modified-data tag.
func (f *Field) ResetMDT() { f.mdt = false }

// cells returns the number of field cells actually backed by the planes. A
// Start-Field near the end of the last row may declare a length running past
// the buffer; only the cells that exist are ever read or written.
func (f *Field) cells() int {
	n := f.buf.Len() - f.startPos
	if n < 0 {
		n = 0
	}
	if n > f.length {
		n = f.length
	}
	return n
}

// Text reads the field content from the display's character plane, always
// length characters long, with unwritten cells as spaces. Cells declared
// past the end of the buffer read as spaces.
func (f *Field) Text() string {
	out := make([]rune, f.length)
	backed := f.cells()
	for i := 0; i < f.length; i++ {
		ch := rune(0)
		if i < backed {
			ch = f.buf.Char(f.startPos + i)
		}
		if ch == 0 {
			ch = ' '
		}
		out[i] = ch
	}
	return string(out)
}

// SetText writes s into the field's cells, truncating to the field length.
// Cells past the text are zeroed. Adjacent storage is never touched, and
// cells declared past the end of the buffer are skipped.
// Content is stored as given: validation of what a numeric or signed-numeric
// field should hold belongs to the layer above.
func (f *Field) SetText(s string) {
	runes := []rune(s)
	backed := f.cells()
	for i := 0; i < backed; i++ {
		if i < len(runes) {
			f.buf.SetChar(f.startPos+i, runes[i])
		} else {
			f.buf.SetChar(f.startPos+i, 0)
		}
	}
}

// IsEmpty reports whether every buffer-backed cell in the field is still the
// null character. Empty fields are skipped by the response builder.
func (f *Field) IsEmpty() bool {
	backed := f.cells()
	for i := 0; i < backed; i++ {
		if f.buf.Char(f.startPos+i) != 0 {
			return false
		}
	}
	return true
}
