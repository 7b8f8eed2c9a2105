package cache

import (
	"encoding/hex"
	"os"

	"github.com/AndrewKvalheim/little-a-map/internal/tile"
)

// ReadSidecar reads the signature previously written next to a tile. A
// missing or unreadable file is reported as ok=false, not an error: a
// tile without a valid sidecar is simply treated as needing a fresh
// render. Pruning is decided by the run's Plan, not by sidecars.
func ReadSidecar(path string) (sig Signature, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Signature{}, false
	}
	decoded, err := hex.DecodeString(string(data))
	if err != nil || len(decoded) != len(sig) {
		return Signature{}, false
	}
	copy(sig[:], decoded)
	return sig, true
}

// WriteSidecar atomically writes sig's hex encoding next to a tile.
func WriteSidecar(path string, sig Signature) error {
	return tile.WriteAtomic(path, []byte(hex.EncodeToString(sig[:])))
}

func (s Signature) Equal(other Signature) bool { return s == other }
