// Package display holds the in-memory model of a 5250 display: four parallel
// per-cell planes (character, attribute code, extended flags, renderer marker)
// plus the error-line save/restore cycle used when the host borrows a row for
// a message line.
//
// The package is headless. A renderer reads the planes through the accessors
// and paints however it likes; nothing here touches a terminal.
package display

// Plane identifies one of the parallel per-cell planes.
type Plane int

// Plane identifiers for ExtractPlane.
const (
	PlaneChar Plane = iota
	PlaneAttr
	PlaneExtended
	PlaneMarker
)

// String returns the plane name.
func (p Plane) String() string {
	switch p {
	case PlaneChar:
		return "char"
	case PlaneAttr:
		return "attr"
	case PlaneExtended:
		return "extended"
	case PlaneMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Extended-flag plane bits.
const (
	ExtNonDisplay byte = 0x01
	ExtColumnSep  byte = 0x02
	ExtUnderline  byte = 0x08
)

// DefaultAttr is the attribute code every cell is reset to by Clear:
// normal-intensity unprotected green. Independent of color depth.
const DefaultAttr byte = 32

// Buffer is the multi-plane character buffer of one emulated display.
//
// Positions are 0-based linear offsets into rows*cols cells. The plane
// accessors perform no bounds checking; callers validate positions before
// reaching the planes (the cursor model rejects out-of-range addresses
// before they get here).
//
// Buffer is not safe for concurrent use. A host driving one session from
// several goroutines must serialize access itself.
type Buffer struct {
	rows, cols int

	chars   []rune
	attrs   []byte
	ext     []byte
	markers []byte

	// Error-line snapshot. errorLine is a 0-based row index.
	errorLine    int
	saved        bool
	savedChars   []rune
	savedAttrs   []byte
	savedExt     []byte
	savedMarkers []byte

	// Dirty span, inclusive positions. dirtyStart > dirtyEnd means clean.
	dirtyStart, dirtyEnd int
}

// New creates a buffer of rows by cols cells, cleared to the default
// attribute, with the error line on the last row.
func New(rows, cols int) *Buffer {
	b := &Buffer{
		rows:      rows,
		cols:      cols,
		errorLine: rows - 1,
	}
	b.allocate()
	b.Clear()
	b.ResetDirty()
	return b
}

// allocate creates the planes. Every plane has identical length rows*cols.
func (b *Buffer) allocate() {
	size := b.rows * b.cols
	b.chars = make([]rune, size)
	b.attrs = make([]byte, size)
	b.ext = make([]byte, size)
	b.markers = make([]byte, size)
}

// Rows returns the row count.
func (b *Buffer) Rows() int { return b.rows }

// Cols returns the column count.
func (b *Buffer) Cols() int { return b.cols }

// Len returns the cell count (rows*cols), the length of every plane.
func (b *Buffer) Len() int { return b.rows * b.cols }

// SetChar stores ch in the character plane at pos.
func (b *Buffer) SetChar(pos int, ch rune) {
	b.chars[pos] = ch
	b.touch(pos)
}

// Char returns the character at pos.
func (b *Buffer) Char(pos int) rune { return b.chars[pos] }

// SetAttr stores attr in the attribute plane at pos and disperses the
// extended flags it implies into the extended plane.
//
// The dispersal table covers the 5250 attribute range 32-63: codes with the
// 0x04 intensity bit set carry underline, codes 48-54 carry a column
// separator, and codes 39, 47, 55 and 63 are non-display. Reverse video is
// part of the attribute code itself and never sets an extended bit.
//
// Attribute 0 is a documented no-op: no plane is touched. Values outside
// 0-63 are stored as given with no extended bits.
func (b *Buffer) SetAttr(pos int, attr byte) {
	if attr == 0 {
		return
	}
	b.attrs[pos] = attr

	var ext byte
	if attr >= 32 && attr <= 63 {
		switch attr {
		case 39, 47, 55, 63:
			ext = ExtNonDisplay
		default:
			if attr&0x04 != 0 {
				ext |= ExtUnderline
			}
			if attr >= 48 && attr <= 54 {
				ext |= ExtColumnSep
			}
		}
	}
	b.ext[pos] = ext
	b.touch(pos)
}

// Attr returns the attribute code at pos.
func (b *Buffer) Attr(pos int) byte { return b.attrs[pos] }

// Extended returns the raw extended-flag bits at pos.
func (b *Buffer) Extended(pos int) byte { return b.ext[pos] }

// IsNonDisplay reports whether the cell at pos is non-display.
func (b *Buffer) IsNonDisplay(pos int) bool { return b.ext[pos]&ExtNonDisplay != 0 }

// IsColumnSeparator reports whether the cell at pos carries a column separator.
func (b *Buffer) IsColumnSeparator(pos int) bool { return b.ext[pos]&ExtColumnSep != 0 }

// IsUnderline reports whether the cell at pos is underlined.
func (b *Buffer) IsUnderline(pos int) bool { return b.ext[pos]&ExtUnderline != 0 }

// SetMarker stores an opaque renderer hint at pos. The core never reads it.
func (b *Buffer) SetMarker(pos int, m byte) {
	b.markers[pos] = m
	b.touch(pos)
}

// Marker returns the renderer hint at pos.
func (b *Buffer) Marker(pos int) byte { return b.markers[pos] }

// SetErrorLine sets the 0-based row the host borrows for message text.
// Out-of-range rows are ignored.
func (b *Buffer) SetErrorLine(row int) {
	if row < 0 || row >= b.rows {
		return
	}
	b.errorLine = row
}

// ErrorLine returns the 0-based error-line row.
func (b *Buffer) ErrorLine() int { return b.errorLine }

// SaveErrorLine snapshots the full error-line row, columns 0..cols-1
// inclusive, across all four planes.
func (b *Buffer) SaveErrorLine() {
	base := b.errorLine * b.cols
	if b.savedChars == nil || len(b.savedChars) != b.cols {
		b.savedChars = make([]rune, b.cols)
		b.savedAttrs = make([]byte, b.cols)
		b.savedExt = make([]byte, b.cols)
		b.savedMarkers = make([]byte, b.cols)
	}
	copy(b.savedChars, b.chars[base:base+b.cols])
	copy(b.savedAttrs, b.attrs[base:base+b.cols])
	copy(b.savedExt, b.ext[base:base+b.cols])
	copy(b.savedMarkers, b.markers[base:base+b.cols])
	b.saved = true
}

// RestoreErrorLine copies the snapshot back into the error-line row, every
// plane including the marker plane, at the row's absolute offsets. Calling
// it with nothing saved is a no-op.
func (b *Buffer) RestoreErrorLine() {
	if !b.saved {
		return
	}
	base := b.errorLine * b.cols
	for col := 0; col < b.cols; col++ {
		b.chars[base+col] = b.savedChars[col]
		b.attrs[base+col] = b.savedAttrs[col]
		b.ext[base+col] = b.savedExt[col]
		b.markers[base+col] = b.savedMarkers[col]
	}
	b.markDirty(base, base+b.cols-1)
}

// ErrorLineSaved reports whether a snapshot is pending.
func (b *Buffer) ErrorLineSaved() bool { return b.saved }

// Resize reallocates the planes to the new geometry, preserving cells whose
// position is valid in both the old and new sizes. Any error-line snapshot
// is discarded.
func (b *Buffer) Resize(rows, cols int) {
	if rows == b.rows && cols == b.cols {
		return
	}

	oldChars, oldAttrs := b.chars, b.attrs
	oldExt, oldMarkers := b.ext, b.markers
	oldRows, oldCols := b.rows, b.cols

	b.rows, b.cols = rows, cols
	b.allocate()

	copyRows := min(oldRows, rows)
	copyCols := min(oldCols, cols)
	for r := 0; r < copyRows; r++ {
		for c := 0; c < copyCols; c++ {
			src := r*oldCols + c
			dst := r*cols + c
			b.chars[dst] = oldChars[src]
			b.attrs[dst] = oldAttrs[src]
			b.ext[dst] = oldExt[src]
			b.markers[dst] = oldMarkers[src]
		}
	}

	b.saved = false
	b.savedChars = nil
	b.savedAttrs = nil
	b.savedExt = nil
	b.savedMarkers = nil
	if b.errorLine >= rows {
		b.errorLine = rows - 1
	}
	b.markDirty(0, b.Len()-1)
}

// ExtractPlane returns a copy of length cells from the given plane starting
// at start. Byte planes are widened to runes. The source planes are never
// mutated, and the returned slice never aliases them.
func (b *Buffer) ExtractPlane(start, length int, plane Plane) []rune {
	out := make([]rune, length)
	switch plane {
	case PlaneChar:
		copy(out, b.chars[start:start+length])
	case PlaneAttr:
		for i := 0; i < length; i++ {
			out[i] = rune(b.attrs[start+i])
		}
	case PlaneExtended:
		for i := 0; i < length; i++ {
			out[i] = rune(b.ext[start+i])
		}
	case PlaneMarker:
		for i := 0; i < length; i++ {
			out[i] = rune(b.markers[start+i])
		}
	}
	return out
}

// Clear resets every cell: zero character, DefaultAttr attribute, no
// extended flags, no marker.
func (b *Buffer) Clear() {
	for i := range b.chars {
		b.chars[i] = 0
		b.attrs[i] = DefaultAttr
		b.ext[i] = 0
		b.markers[i] = 0
	}
	b.markDirty(0, b.Len()-1)
}

// Dirty returns the inclusive span of positions touched since the last
// ResetDirty. ok is false when nothing changed.
func (b *Buffer) Dirty() (start, end int, ok bool) {
	if b.dirtyStart > b.dirtyEnd {
		return 0, 0, false
	}
	return b.dirtyStart, b.dirtyEnd, true
}

// ResetDirty marks the buffer clean.
func (b *Buffer) ResetDirty() {
	b.dirtyStart = b.Len()
	b.dirtyEnd = -1
}

func (b *Buffer) touch(pos int) { b.markDirty(pos, pos) }

func (b *Buffer) markDirty(start, end int) {
	if start < b.dirtyStart {
		b.dirtyStart = start
	}
	if end > b.dirtyEnd {
		b.dirtyEnd = end
	}
}
