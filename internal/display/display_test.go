package display

import "testing"

func TestNewBufferGeometry(t *testing.T) {
	b := New(24, 80)

	if b.Rows() != 24 || b.Cols() != 80 {
		t.Errorf("expected 24x80, got %dx%d", b.Rows(), b.Cols())
	}
	if b.Len() != 1920 {
		t.Errorf("expected 1920 cells, got %d", b.Len())
	}
	if b.Attr(0) != DefaultAttr {
		t.Errorf("expected default attribute %d, got %d", DefaultAttr, b.Attr(0))
	}
}

func TestSetCharGetChar(t *testing.T) {
	b := New(24, 80)

	b.SetChar(100, 'A')
	if got := b.Char(100); got != 'A' {
		t.Errorf("expected 'A', got %q", got)
	}
}

func TestAttributeDispersal(t *testing.T) {
	tests := []struct {
		name string
		attr byte
		ext  byte
	}{
		{"green normal", 32, 0},
		{"green reverse", 33, 0},
		{"white normal", 34, 0},
		{"green underline", 36, ExtUnderline},
		{"green underline reverse", 37, ExtUnderline},
		{"white underline", 38, ExtUnderline},
		{"non-display 39", 39, ExtNonDisplay},
		{"red normal", 40, 0},
		{"red underline", 44, ExtUnderline},
		{"non-display 47", 47, ExtNonDisplay},
		{"turquoise column sep", 48, ExtColumnSep},
		{"yellow column sep", 50, ExtColumnSep},
		{"turquoise underline colsep", 52, ExtColumnSep | ExtUnderline},
		{"yellow underline colsep", 54, ExtColumnSep | ExtUnderline},
		{"non-display 55", 55, ExtNonDisplay},
		{"pink normal", 56, 0},
		{"pink underline", 60, ExtUnderline},
		{"blue underline", 62, ExtUnderline},
		{"non-display 63", 63, ExtNonDisplay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(24, 80)
			b.SetAttr(500, tt.attr)
			if got := b.Attr(500); got != tt.attr {
				t.Errorf("expected attr %d stored, got %d", tt.attr, got)
			}
			if got := b.Extended(500); got != tt.ext {
				t.Errorf("expected extended 0x%02x, got 0x%02x", tt.ext, got)
			}
		})
	}
}

func TestAttributeZeroIsNoOp(t *testing.T) {
	b := New(24, 80)
	b.SetAttr(10, 36)

	b.SetAttr(10, 0)

	if got := b.Attr(10); got != 36 {
		t.Errorf("attribute 0 must not touch the attr plane: got %d", got)
	}
	if !b.IsUnderline(10) {
		t.Error("attribute 0 must not touch the extended plane")
	}
}

func TestAttributeOutOfRangeStoredPermissively(t *testing.T) {
	b := New(24, 80)

	b.SetAttr(10, 200)

	if got := b.Attr(10); got != 200 {
		t.Errorf("expected out-of-range attr stored as given, got %d", got)
	}
	if got := b.Extended(10); got != 0 {
		t.Errorf("expected no extended bits for out-of-range attr, got 0x%02x", got)
	}
}

// Writing any plane at P must never change another position, including on
// the last screen row.
func TestPlaneIndependence(t *testing.T) {
	b := New(24, 80)
	p := 1919 // last cell of the last row
	q := 1918

	b.SetChar(q, 'Q')
	b.SetAttr(q, 34)
	b.SetMarker(q, 7)

	b.SetAttr(p, 39)
	b.SetChar(p, 'P')
	b.SetMarker(p, 9)

	if b.Char(q) != 'Q' || b.Attr(q) != 34 || b.Marker(q) != 7 || b.Extended(q) != 0 {
		t.Errorf("writes at %d leaked into %d: char=%q attr=%d ext=0x%02x marker=%d",
			p, q, b.Char(q), b.Attr(q), b.Extended(q), b.Marker(q))
	}
}

func TestErrorLineRoundTrip(t *testing.T) {
	b := New(24, 80)
	base := b.ErrorLine() * b.Cols()

	// Distinct values per column across all four planes.
	for col := 0; col < b.Cols(); col++ {
		b.SetChar(base+col, rune('A'+col%26))
		b.SetAttr(base+col, byte(32+col%32))
		b.SetMarker(base+col, byte(col%256))
	}
	want := b.ExtractPlane(base, b.Cols(), PlaneChar)
	wantAttr := b.ExtractPlane(base, b.Cols(), PlaneAttr)
	wantExt := b.ExtractPlane(base, b.Cols(), PlaneExtended)
	wantMark := b.ExtractPlane(base, b.Cols(), PlaneMarker)

	b.SaveErrorLine()

	// Corrupt every column, first and last included.
	for col := 0; col < b.Cols(); col++ {
		b.SetChar(base+col, 'X')
		b.SetAttr(base+col, 63)
		b.SetMarker(base+col, 0xFF)
	}

	b.RestoreErrorLine()

	for col := 0; col < b.Cols(); col++ {
		if b.Char(base+col) != want[col] {
			t.Fatalf("col %d: expected char %q restored, got %q", col, want[col], b.Char(base+col))
		}
		if rune(b.Attr(base+col)) != wantAttr[col] {
			t.Fatalf("col %d: expected attr %d restored, got %d", col, wantAttr[col], b.Attr(base+col))
		}
		if rune(b.Extended(base+col)) != wantExt[col] {
			t.Fatalf("col %d: expected extended %d restored, got %d", col, wantExt[col], b.Extended(base+col))
		}
		if rune(b.Marker(base+col)) != wantMark[col] {
			t.Fatalf("col %d: expected marker %d restored, got %d", col, wantMark[col], b.Marker(base+col))
		}
	}
}

func TestRestoreWithoutSaveIsNoOp(t *testing.T) {
	b := New(24, 80)
	base := b.ErrorLine() * b.Cols()
	b.SetChar(base, 'K')

	b.RestoreErrorLine()

	if got := b.Char(base); got != 'K' {
		t.Errorf("restore without save must not change the row, got %q", got)
	}
}

func TestRestoreOnlyAffectsErrorLine(t *testing.T) {
	b := New(24, 80)
	b.SetChar(10, 'N')

	b.SaveErrorLine()
	b.RestoreErrorLine()

	if got := b.Char(10); got != 'N' {
		t.Errorf("restore leaked outside the error line, got %q", got)
	}
}

func TestRestoreUsesAbsoluteRowOffset(t *testing.T) {
	b := New(24, 80)
	b.SetErrorLine(5)
	base := 5 * b.Cols()
	b.SetChar(base+3, 'E')
	b.SetMarker(base+3, 42)

	b.SaveErrorLine()
	b.SetChar(base+3, 'X')
	b.SetMarker(base+3, 0)
	b.RestoreErrorLine()

	if b.Char(base+3) != 'E' || b.Marker(base+3) != 42 {
		t.Errorf("expected restore at the row's absolute offset, got char %q marker %d",
			b.Char(base+3), b.Marker(base+3))
	}
	// Row 0 columns must be untouched; a relative-offset restore would land here.
	if b.Char(3) != 0 {
		t.Errorf("restore wrote to column-only offset: got %q at position 3", b.Char(3))
	}
}

func TestResizePreservesOverlap(t *testing.T) {
	b := New(24, 80)
	b.SetChar(2*80+5, 'R')
	b.SetAttr(2*80+5, 36)

	b.Resize(25, 132)

	pos := 2*132 + 5
	if b.Char(pos) != 'R' {
		t.Errorf("expected 'R' preserved across resize, got %q", b.Char(pos))
	}
	if b.Attr(pos) != 36 || !b.IsUnderline(pos) {
		t.Errorf("expected attribute preserved across resize, got %d", b.Attr(pos))
	}
	if b.Len() != 25*132 {
		t.Errorf("expected %d cells after resize, got %d", 25*132, b.Len())
	}
}

func TestExtractPlaneDoesNotAliasOrMutate(t *testing.T) {
	b := New(24, 80)
	b.SetChar(0, 'A')
	b.SetChar(1, 'B')
	b.SetChar(2, 'C')

	got := b.ExtractPlane(0, 3, PlaneChar)
	if string(got) != "ABC" {
		t.Fatalf("expected ABC, got %q", string(got))
	}

	got[0] = 'Z'
	if b.Char(0) != 'A' {
		t.Error("extracted slice aliases the source plane")
	}
}

func TestClearResetsAllPlanes(t *testing.T) {
	b := New(24, 80)
	b.SetChar(9, 'x')
	b.SetAttr(9, 39)
	b.SetMarker(9, 1)

	b.Clear()

	if b.Char(9) != 0 || b.Attr(9) != DefaultAttr || b.Extended(9) != 0 || b.Marker(9) != 0 {
		t.Errorf("clear left residue: char=%q attr=%d ext=%d marker=%d",
			b.Char(9), b.Attr(9), b.Extended(9), b.Marker(9))
	}
}

func TestDirtyTracking(t *testing.T) {
	b := New(24, 80)
	b.ResetDirty()

	if _, _, ok := b.Dirty(); ok {
		t.Fatal("fresh buffer should be clean")
	}

	b.SetChar(100, 'a')
	b.SetChar(50, 'b')

	start, end, ok := b.Dirty()
	if !ok || start != 50 || end != 100 {
		t.Errorf("expected dirty span [50,100], got [%d,%d] ok=%v", start, end, ok)
	}

	b.ResetDirty()
	if _, _, ok := b.Dirty(); ok {
		t.Error("expected clean after ResetDirty")
	}
}
