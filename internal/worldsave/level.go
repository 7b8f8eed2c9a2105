package worldsave

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/AndrewKvalheim/little-a-map/internal/nbt"
)

// LevelInfo is the subset of level.dat the pipeline needs: the world spawn
// position for the rendered map's initial view, and the save's
// DataVersion for palette selection.
type LevelInfo struct {
	SpawnX, SpawnZ int32
	DataVersion    int32
}

// ReadLevelInfo decodes level.dat's gzip-compressed NBT and extracts
// Data.SpawnX, Data.SpawnZ, and Data.DataVersion.
func ReadLevelInfo(path string) (*LevelInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("worldsave: %s: not gzip: %w", path, err)
	}
	defer gz.Close()

	root, err := nbt.NewDecoder(gz).Decode()
	if err != nil {
		return nil, fmt.Errorf("worldsave: %s: %w", path, err)
	}

	data, ok := root.Value.MustCompound("Data")
	if !ok {
		return nil, fmt.Errorf("worldsave: %s: missing Data compound", path)
	}

	info := &LevelInfo{}
	if v, ok := data.MustInt("SpawnX"); ok {
		info.SpawnX = v
	}
	if v, ok := data.MustInt("SpawnZ"); ok {
		info.SpawnZ = v
	}
	if v, ok := data.MustInt("DataVersion"); ok {
		info.DataVersion = v
	}
	return info, nil
}
