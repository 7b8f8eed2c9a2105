package cache

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Plan is the complete set of outputs the current run intends to have on
// disk when it finishes: every tile (native and mip) and every per-map
// artifact. Prune deletes every .webp under outputDir/tiles and
// outputDir/maps that isn't named here, along with its .sig and, for a
// native tile, its meta.json; other files are left alone.
type Plan struct {
	Tiles map[string]struct{} // "<zoom>/<x>/<y>"
	Maps  map[uint32]struct{}
}

func NewPlan() *Plan {
	return &Plan{Tiles: make(map[string]struct{}), Maps: make(map[uint32]struct{})}
}

func (p *Plan) AddTile(zoom int, x, y int32) {
	p.Tiles[tileKey(zoom, x, y)] = struct{}{}
}

func (p *Plan) AddMap(id uint32) { p.Maps[id] = struct{}{} }

func tileKey(zoom int, x, y int32) string {
	return strconv.Itoa(zoom) + "/" + strconv.Itoa(int(x)) + "/" + strconv.Itoa(int(y))
}

// Result tallies what Prune removed, for the run summary.
type Result struct {
	TilesPruned int
	MapsPruned  int
}

// Prune walks outputDir/tiles and outputDir/maps and deletes every
// tile/map (plus its .sig and, for native tiles, .meta.json) whose key is
// not in plan, then removes any directory left empty by those deletions.
func Prune(outputDir string, plan *Plan) (Result, error) {
	var result Result

	tilesDir := filepath.Join(outputDir, "tiles")
	err := filepath.WalkDir(tilesDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".webp") {
			return nil
		}
		zoom, x, y, ok := parseTilePath(tilesDir, path)
		if !ok {
			return nil
		}
		if zoom == 4 {
			// The meta-prefix directory holds no .webp files of its own;
			// nothing under it is a renderable tile.
			return nil
		}
		if _, wanted := plan.Tiles[tileKey(zoom, x, y)]; wanted {
			return nil
		}

		removeTileFiles(outputDir, zoom, x, y)
		result.TilesPruned++
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return result, err
	}

	mapsDir := filepath.Join(outputDir, "maps")
	err = filepath.WalkDir(mapsDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".webp") {
			return nil
		}
		id, ok := parseMapPath(mapsDir, path)
		if !ok {
			return nil
		}
		if _, wanted := plan.Maps[id]; wanted {
			return nil
		}

		os.Remove(path)
		os.Remove(strings.TrimSuffix(path, ".webp") + ".sig")
		result.MapsPruned++
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return result, err
	}

	removeEmptyDirs(tilesDir)
	removeEmptyDirs(mapsDir)

	return result, nil
}

func removeTileFiles(outputDir string, zoom int, x, y int32) {
	base := filepath.Join(outputDir, "tiles", strconv.Itoa(zoom), strconv.Itoa(int(x)), strconv.Itoa(int(y)))
	os.Remove(base + ".webp")
	os.Remove(base + ".sig")

	if zoom == 0 {
		metaBase := filepath.Join(outputDir, "tiles", "4", strconv.Itoa(int(x)), strconv.Itoa(int(y)))
		os.Remove(metaBase + ".meta.json")
	}
}

func parseTilePath(tilesDir, path string) (zoom int, x, y int32, ok bool) {
	rel, err := filepath.Rel(tilesDir, path)
	if err != nil {
		return 0, 0, 0, false
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	z, err1 := strconv.Atoi(parts[0])
	xi, err2 := strconv.Atoi(parts[1])
	yi, err3 := strconv.Atoi(strings.TrimSuffix(parts[2], ".webp"))
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return z, int32(xi), int32(yi), true
}

func parseMapPath(mapsDir, path string) (uint32, bool) {
	rel, err := filepath.Rel(mapsDir, path)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(strings.TrimSuffix(filepath.ToSlash(rel), ".webp"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// removeEmptyDirs repeatedly deletes empty directories under root until
// none remain, since pruning a tile can empty out its x/ and zoom/
// parents in turn.
func removeEmptyDirs(root string) {
	for i := 0; i < 8; i++ {
		removed := false
		filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil || path == root || !d.IsDir() {
				return nil
			}
			entries, err := os.ReadDir(path)
			if err == nil && len(entries) == 0 {
				if os.Remove(path) == nil {
					removed = true
				}
			}
			return nil
		})
		if !removed {
			return
		}
	}
}
