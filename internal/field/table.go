package field

import "github.com/dshills/greenscreen/internal/display"

// Table is the format table: fields in creation order, plus the "current
// field" cursor used by Tab/Backtab navigation.
//
// Fields are only ever removed in bulk by Clear (a new screen format).
type Table struct {
	buf     *display.Buffer
	fields  []*Field
	current int // index into fields, -1 when none
}

// NewTable creates an empty table over buf. The buffer is consulted only
// for character storage and length bounds; the table owns every Field.
func NewTable(buf *display.Buffer) *Table {
	return &Table{buf: buf, current: -1}
}

// Clear removes all fields. The host sends a new format.
func (t *Table) Clear() {
	t.fields = t.fields[:0]
	t.current = -1
}

// Count returns the number of fields.
func (t *Table) Count() int { return len(t.fields) }

// FieldAt returns the i-th field in creation order (0-based), or nil.
func (t *Table) FieldAt(i int) *Field {
	if i < 0 || i >= len(t.fields) {
		return nil
	}
	return t.fields[i]
}

// AddField creates a field at startPos (the current cursor position when a
// Start-Field order arrives) and appends it in creation order. A negative
// length is treated as zero; zero-length fields act as position markers.
// Fields longer than the remaining row simply span into the next row's
// linear offsets; a length running past the buffer end is permitted, and
// the unbacked cells read as spaces and are never written.
//
// A second Start-Field at an existing field's start position replaces that
// field in place, keeping the table free of overlapping duplicates.
func (t *Table) AddField(startPos int, attr byte, length int, ffw1, ffw2, fcw1, fcw2 byte) *Field {
	f := newField(t.buf, startPos, attr, length, ffw1, ffw2, fcw1, fcw2)
	for i, old := range t.fields {
		if old.startPos == startPos {
			t.fields[i] = f
			return f
		}
	}
	t.fields = append(t.fields, f)
	return f
}

// FindByPosition returns the field containing pos, or nil when pos is
// outside every field or the table is empty.
func (t *Table) FindByPosition(pos int) *Field {
	for _, f := range t.fields {
		if f.Contains(pos) {
			return f
		}
	}
	return nil
}

// Current returns the current field, or nil when none is selected.
func (t *Table) Current() *Field {
	if t.current < 0 || t.current >= len(t.fields) {
		return nil
	}
	return t.fields[t.current]
}

// SetCurrentIndex selects the current field by 0-based index. Out-of-range
// indexes deselect.
func (t *Table) SetCurrentIndex(i int) {
	if i < 0 || i >= len(t.fields) {
		t.current = -1
		return
	}
	t.current = i
}

// CurrentIndex returns the 0-based index of the current field, or -1.
func (t *Table) CurrentIndex() int { return t.current }

// NextField advances the current-field cursor to the next non-bypass field,
// wrapping past the last field to the first. With no selection it starts at
// the first field. Returns the new current field, or nil when the table is
// empty or every field is bypass.
func (t *Table) NextField() *Field { return t.step(1) }

// PrevField moves the current-field cursor to the previous non-bypass
// field, wrapping past the first field to the last.
func (t *Table) PrevField() *Field { return t.step(-1) }

func (t *Table) step(dir int) *Field {
	n := len(t.fields)
	if n == 0 {
		return nil
	}
	start := t.current
	if start < 0 {
		if dir > 0 {
			start = n - 1 // first probe lands on index 0
		} else {
			start = 0 // first probe lands on the last index
		}
	}
	i := start
	for probes := 0; probes < n; probes++ {
		i = ((i+dir)%n + n) % n
		if !t.fields[i].IsBypass() {
			t.current = i
			return t.fields[i]
		}
	}
	return nil
}

// ResetMDT clears the modified-data tag on every field.
func (t *Table) ResetMDT() {
	for _, f := range t.fields {
		f.ResetMDT()
	}
}

// Nil-safe wrappers over the current field, for callers that poll state
// between formats when no field is selected.

// IsCurrentBypass reports whether the current field is bypass; false with
// no current field.
func (t *Table) IsCurrentBypass() bool {
	f := t.Current()
	return f != nil && f.IsBypass()
}

// IsCurrentDupEnabled reports whether the current field allows Dup; false
// with no current field.
func (t *Table) IsCurrentDupEnabled() bool {
	f := t.Current()
	return f != nil && f.IsDupEnabled()
}

// IsCurrentFER reports whether the current field requires field exit; false
// with no current field.
func (t *Table) IsCurrentFER() bool {
	f := t.Current()
	return f != nil && f.IsFER()
}
