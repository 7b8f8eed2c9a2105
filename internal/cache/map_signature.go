package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"path/filepath"
	"strconv"

	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
)

// ComputeMapSignature derives the cache key for a per-map artifact
// (maps/<id>.webp): a hash of the map id and the map file's own
// modification timestamp, so a rewritten map file under the same id
// yields a different signature.
func ComputeMapSignature(m *mapitem.MapItem) Signature {
	h := sha256.New()
	h.Write([]byte{ToolVersion})

	var buf [12]byte
	binary.BigEndian.PutUint32(buf[0:4], m.ID)
	binary.BigEndian.PutUint64(buf[4:12], uint64(m.ModifiedAt.UnixNano()))
	h.Write(buf[:])

	var sig Signature
	copy(sig[:], h.Sum(nil))
	return sig
}

// MapArtifactPaths returns the webp/sig paths for a map's standalone
// inspect-popup render.
func MapArtifactPaths(outputDir string, id uint32) (webpPath, sigPath string) {
	base := filepath.Join(outputDir, "maps", strconv.FormatUint(uint64(id), 10))
	return base + ".webp", base + ".sig"
}
