package bannercatalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
)

func TestBuildGroupsBannersByWorldPosition(t *testing.T) {
	pos := [3]int32{10, 64, -20}
	items := []*mapitem.MapItem{
		{ID: 1, Banners: []mapitem.Banner{{WorldPos: pos, Color: "red", Name: "Base"}}},
		{ID: 2, Banners: []mapitem.Banner{{WorldPos: pos, Color: "red", Name: "Base"}}},
	}

	fc := Build(items)
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1 (same physical banner referenced twice)", len(fc.Features))
	}

	maps, ok := fc.Features[0].Properties["maps"].([]uint32)
	if !ok {
		t.Fatalf("maps property = %v, want a []uint32", fc.Features[0].Properties["maps"])
	}
	if diff := cmp.Diff([]uint32{1, 2}, maps); diff != "" {
		t.Fatalf("maps property mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildUniqueNameWithinColor(t *testing.T) {
	items := []*mapitem.MapItem{
		{ID: 1, Banners: []mapitem.Banner{{WorldPos: [3]int32{0, 0, 0}, Color: "red", Name: "Outpost"}}},
	}

	fc := Build(items)
	if fc.Features[0].Properties["unique"] != true {
		t.Fatalf("expected unique=true for a one-of-a-kind named banner, got %v", fc.Features[0].Properties["unique"])
	}
}

func TestBuildDuplicateNameSameColorIsNotUnique(t *testing.T) {
	items := []*mapitem.MapItem{
		{ID: 1, Banners: []mapitem.Banner{{WorldPos: [3]int32{0, 0, 0}, Color: "red", Name: "Outpost"}}},
		{ID: 2, Banners: []mapitem.Banner{{WorldPos: [3]int32{5, 0, 0}, Color: "red", Name: "Outpost"}}},
	}

	fc := Build(items)
	for _, f := range fc.Features {
		if f.Properties["unique"] != false {
			t.Fatalf("expected unique=false when two distinct banners of the same color share a name, got %v for %v",
				f.Properties["unique"], f.Properties["name"])
		}
	}
}

func TestBuildSameNameDifferentColorIsStillUnique(t *testing.T) {
	items := []*mapitem.MapItem{
		{ID: 1, Banners: []mapitem.Banner{{WorldPos: [3]int32{0, 0, 0}, Color: "red", Name: "Outpost"}}},
		{ID: 2, Banners: []mapitem.Banner{{WorldPos: [3]int32{5, 0, 0}, Color: "blue", Name: "Outpost"}}},
	}

	fc := Build(items)
	for _, f := range fc.Features {
		if f.Properties["unique"] != true {
			t.Fatalf("expected unique=true when the same name is used by a different color, got %v", f.Properties["unique"])
		}
	}
}

func TestBuildUnnamedBannerIsNeverUnique(t *testing.T) {
	items := []*mapitem.MapItem{
		{ID: 1, Banners: []mapitem.Banner{{WorldPos: [3]int32{0, 0, 0}, Color: "red"}}},
	}

	fc := Build(items)
	if fc.Features[0].Properties["unique"] != false {
		t.Fatalf("expected unique=false for an unnamed banner, got %v", fc.Features[0].Properties["unique"])
	}
	if _, hasName := fc.Features[0].Properties["name"]; hasName {
		t.Fatal("unnamed banner should not carry a name property")
	}
}

func TestBuildLastNamedWinsForSamePosition(t *testing.T) {
	pos := [3]int32{1, 2, 3}
	items := []*mapitem.MapItem{
		{ID: 1, Banners: []mapitem.Banner{{WorldPos: pos, Color: "red", Name: "First"}}},
		{ID: 2, Banners: []mapitem.Banner{{WorldPos: pos, Color: "red", Name: "Second"}}},
	}

	fc := Build(items)
	if len(fc.Features) != 1 {
		t.Fatalf("got %d features, want 1", len(fc.Features))
	}
	if fc.Features[0].Properties["name"] != "Second" {
		t.Fatalf("name = %v, want the later reference's name to win", fc.Features[0].Properties["name"])
	}
}

func TestBuildEmptyWithNoBanners(t *testing.T) {
	fc := Build(nil)
	if len(fc.Features) != 0 {
		t.Fatalf("got %d features, want 0", len(fc.Features))
	}
}
