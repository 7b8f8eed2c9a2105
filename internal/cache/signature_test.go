package cache

import (
	"testing"
	"time"

	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
	"github.com/AndrewKvalheim/little-a-map/internal/tile"
)

func item(id uint32, modified time.Time) *mapitem.MapItem {
	return &mapitem.MapItem{ID: id, ModifiedAt: modified}
}

func TestComputeIsOrderIndependent(t *testing.T) {
	t0 := time.Unix(1000, 0)
	t1 := time.Unix(2000, 0)
	coord := tile.Coord{Zoom: 0, X: 3, Y: -4}

	a := Compute(coord, []*mapitem.MapItem{item(1, t0), item(2, t1)})
	b := Compute(coord, []*mapitem.MapItem{item(2, t1), item(1, t0)})

	if a != b {
		t.Fatal("signature should not depend on contributor slice order")
	}
}

func TestComputeChangesWithModificationTime(t *testing.T) {
	coord := tile.Coord{Zoom: 0, X: 0, Y: 0}

	a := Compute(coord, []*mapitem.MapItem{item(1, time.Unix(1000, 0))})
	b := Compute(coord, []*mapitem.MapItem{item(1, time.Unix(1001, 0))})

	if a == b {
		t.Fatal("signature should change when a contributor's ModifiedAt changes")
	}
}

func TestComputeChangesWithCoord(t *testing.T) {
	contributors := []*mapitem.MapItem{item(1, time.Unix(1000, 0))}

	a := Compute(tile.Coord{Zoom: 0, X: 0, Y: 0}, contributors)
	b := Compute(tile.Coord{Zoom: 0, X: 1, Y: 0}, contributors)

	if a == b {
		t.Fatal("signature should change when the tile coordinate changes")
	}
}

func TestComputeEmptyContributorsIsDeterministic(t *testing.T) {
	coord := tile.Coord{Zoom: 2, X: 7, Y: 9}

	a := Compute(coord, nil)
	b := Compute(coord, nil)

	if a != b {
		t.Fatal("empty-contributor signature should be stable")
	}
}

func TestContributorSetDedups(t *testing.T) {
	t0 := time.Unix(1000, 0)
	a := item(1, t0)
	b := item(2, t0)
	aDup := item(1, t0)

	set := ContributorSet([]*mapitem.MapItem{a, b}, []*mapitem.MapItem{aDup})

	if len(set) != 2 {
		t.Fatalf("got %d contributors, want 2", len(set))
	}
}
