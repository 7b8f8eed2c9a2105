package bannercatalog

import (
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"github.com/AndrewKvalheim/little-a-map/internal/tile"
)

// WriteFile marshals fc as banners.json and writes it unconditionally
// every run.
func WriteFile(outputDir string, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	return tile.WriteAtomic(filepath.Join(outputDir, "banners.json"), data)
}
