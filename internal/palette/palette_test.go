package palette

import "testing"

func TestResolveIndexZeroIsTransparent(t *testing.T) {
	table := Table(3700)
	r, g, b, a := Resolve(table, 0)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Fatalf("got %d,%d,%d,%d; want fully transparent", r, g, b, a)
	}
}

func TestResolveShadeSelection(t *testing.T) {
	table := Table(3700)

	// Base color 8 is white {255,255,255}; shade index 2 is full brightness.
	r, g, b, a := Resolve(table, 8*4+2)
	if r != 255 || g != 255 || b != 255 || a != 255 {
		t.Fatalf("got %d,%d,%d,%d; want 255,255,255,255", r, g, b, a)
	}

	// Shade index 3 (135/255) should darken the same base color.
	rDark, _, _, _ := Resolve(table, 8*4+3)
	if rDark >= r {
		t.Fatalf("shade 3 (%d) should be darker than shade 2 (%d)", rDark, r)
	}
}

func TestResolveOutOfRangeIndexIsTransparent(t *testing.T) {
	table := Table(3700)
	r, g, b, a := Resolve(table, 255)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Fatalf("got %d,%d,%d,%d; want fully transparent for an out-of-range index", r, g, b, a)
	}
}

func TestTableHasExpectedSize(t *testing.T) {
	table := Table(3700)
	if len(table) != 59*4 {
		t.Fatalf("got %d entries, want %d", len(table), 59*4)
	}
}

func TestTableFallsBackForLegacyDataVersions(t *testing.T) {
	modern := Table(3700)
	legacy := Table(100)

	if len(legacy) != len(modern) {
		t.Fatalf("legacy table length = %d, want %d (no earlier table exists in the corpus)", len(legacy), len(modern))
	}
}
