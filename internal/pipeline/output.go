package pipeline

import (
	"os"
	"path/filepath"

	"github.com/AndrewKvalheim/little-a-map/internal/site"
	"github.com/AndrewKvalheim/little-a-map/internal/worldsave"
)

func writeIndex(outputDir string, level *worldsave.LevelInfo, maxContributors int) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(outputDir, ".tmp-index-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	data := site.Data{
		SpawnX:       level.SpawnX,
		SpawnZ:       level.SpawnZ,
		CacheVersion: ToolVersion,
		MapsStacked:  maxContributors,
	}
	if err := site.Render(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), filepath.Join(outputDir, "index.html"))
}
