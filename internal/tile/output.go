package tile

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
)

// EncodeLossless renders img as lossless WebP bytes, wrapping
// github.com/chai2010/webp rather than implementing the codec by hand.
func EncodeLossless(img image.Image) ([]byte, error) {
	return webp.EncodeRGBA(img, 100)
}

// WriteAtomic writes data to path via a unique temporary file in the same
// directory followed by a rename, so a cancelled or crashed run never
// leaves a half-written tile.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Path returns the on-disk path for a rendered tile under outputDir.
func Path(outputDir string, c Coord) string {
	return filepath.Join(outputDir, "tiles", fmt.Sprint(c.Zoom), fmt.Sprint(c.X), fmt.Sprintf("%d.webp", c.Y))
}

// SignaturePath returns the sidecar signature path for a tile.
func SignaturePath(outputDir string, c Coord) string {
	return filepath.Join(outputDir, "tiles", fmt.Sprint(c.Zoom), fmt.Sprint(c.X), fmt.Sprintf("%d.sig", c.Y))
}

// MetaPath returns the inspect-metadata path for a native-zoom tile,
// addressed under the fixed viewer-oriented MetaZoomPrefix.
func MetaPath(outputDir string, c Coord) string {
	return filepath.Join(outputDir, "tiles", fmt.Sprint(MetaZoomPrefix), fmt.Sprint(c.X), fmt.Sprintf("%d.meta.json", c.Y))
}

type metaDocument struct {
	Maps []uint32 `json:"maps"`
}

// WriteMeta writes the inspect-popup metadata for a native tile: its
// contributing map ids, coarsest first.
func WriteMeta(outputDir string, c Coord, mapIDsCoarsestFirst []uint32) error {
	data, err := json.Marshal(metaDocument{Maps: mapIDsCoarsestFirst})
	if err != nil {
		return err
	}
	return WriteAtomic(MetaPath(outputDir, c), data)
}
