package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSidecarRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "0", "0", "0.sig")

	sig := Signature{1, 2, 3, 4}
	if err := WriteSidecar(path, sig); err != nil {
		t.Fatalf("WriteSidecar: %v", err)
	}

	got, ok := ReadSidecar(path)
	if !ok {
		t.Fatal("expected ok=true after writing sidecar")
	}
	if !got.Equal(sig) {
		t.Fatalf("got %v, want %v", got, sig)
	}
}

func TestReadSidecarMissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()

	_, ok := ReadSidecar(filepath.Join(dir, "absent.sig"))
	if ok {
		t.Fatal("expected ok=false for a missing sidecar")
	}
}

func TestReadSidecarCorruptContentsIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corrupt.sig")

	if err := WriteSidecar(path, Signature{}); err != nil {
		t.Fatalf("WriteSidecar: %v", err)
	}
	// Overwrite with non-hex garbage directly, bypassing WriteSidecar.
	if err := os.WriteFile(path, []byte("not hex"), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	_, ok := ReadSidecar(path)
	if ok {
		t.Fatal("expected ok=false for corrupt sidecar contents")
	}
}
