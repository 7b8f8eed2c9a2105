package worldsave

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/AndrewKvalheim/little-a-map/internal/nbt"
)

type levelData struct {
	SpawnX      int32 `nbt:"SpawnX"`
	SpawnZ      int32 `nbt:"SpawnZ"`
	DataVersion int32 `nbt:"DataVersion"`
}

type levelDoc struct {
	Data levelData `nbt:"Data"`
}

func writeLevelDat(t *testing.T, path string, doc levelDoc) {
	t.Helper()

	var raw bytes.Buffer
	if err := nbt.NewEncoder(&raw).Encode(doc); err != nil {
		t.Fatalf("encode: %v", err)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(raw.Bytes()); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
}

func TestReadLevelInfoExtractsSpawnAndDataVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.dat")
	writeLevelDat(t, path, levelDoc{Data: levelData{SpawnX: 100, SpawnZ: -200, DataVersion: 3700}})

	info, err := ReadLevelInfo(path)
	if err != nil {
		t.Fatalf("ReadLevelInfo: %v", err)
	}
	if info.SpawnX != 100 || info.SpawnZ != -200 || info.DataVersion != 3700 {
		t.Fatalf("got %+v", info)
	}
}

func TestReadLevelInfoRejectsNonGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "level.dat")
	if err := os.WriteFile(path, []byte("not gzip"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ReadLevelInfo(path); err == nil {
		t.Fatal("expected an error for a non-gzip level.dat")
	}
}
