// Package ltmerr types the run's error taxonomy: fatal-setup errors abort
// the run, fatal-per-file and soft-per-item/per-tile errors are logged,
// counted, and skipped. Errors wrap their cause with fmt.Errorf's %w, the
// same idiom anvil_world.go uses for its own chunk-read failures.
package ltmerr

import (
	"fmt"
	"sync"
)

// FatalSetup aborts the whole run: a missing save directory, an
// uncreatable output directory, or an unsupported data version.
type FatalSetup struct{ Cause error }

func (e *FatalSetup) Error() string { return fmt.Sprintf("fatal setup error: %v", e.Cause) }
func (e *FatalSetup) Unwrap() error { return e.Cause }

func Setup(format string, args ...interface{}) *FatalSetup {
	return &FatalSetup{Cause: fmt.Errorf(format, args...)}
}

// PerFile is logged and causes that one source file to be skipped; siblings
// continue (a corrupt region header, an unknown compression tag).
type PerFile struct {
	Path  string
	Cause error
}

func (e *PerFile) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Cause) }
func (e *PerFile) Unwrap() error { return e.Cause }

// PerItem marks one soft, per-map-id omission: a referenced map .dat that
// could not be decoded. It is logged and counted, and the map is left out
// of the render; an absent .dat is only counted, without a PerItem.
type PerItem struct {
	MapID uint32
	Cause error
}

func (e *PerItem) Error() string { return fmt.Sprintf("map %d: %v", e.MapID, e.Cause) }
func (e *PerItem) Unwrap() error { return e.Cause }

// PerTile marks a failure to encode or write one output tile; the previous
// tile on disk, if any, is left untouched and its signature is not updated.
type PerTile struct {
	Zoom, X, Y int
	Cause      error
}

func (e *PerTile) Error() string {
	return fmt.Sprintf("tile z%d/%d/%d: %v", e.Zoom, e.X, e.Y, e.Cause)
}
func (e *PerTile) Unwrap() error { return e.Cause }

// Tally counts soft errors across a phase so the run summary can report
// them without aborting. Safe for concurrent use.
type Tally struct {
	mu              sync.Mutex
	skippedFiles    int
	skippedChunks   int
	missingMaps     int
	failedTileWrite int
}

func NewTally() *Tally { return &Tally{} }

func (t *Tally) AddSkippedFile() {
	t.mu.Lock()
	t.skippedFiles++
	t.mu.Unlock()
}

func (t *Tally) AddSkippedChunk() {
	t.mu.Lock()
	t.skippedChunks++
	t.mu.Unlock()
}

func (t *Tally) AddMissingMap() {
	t.mu.Lock()
	t.missingMaps++
	t.mu.Unlock()
}

func (t *Tally) AddFailedTileWrite() {
	t.mu.Lock()
	t.failedTileWrite++
	t.mu.Unlock()
}

func (t *Tally) Counts() (skippedFiles, skippedChunks, missingMaps, failedTileWrite int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.skippedFiles, t.skippedChunks, t.missingMaps, t.failedTileWrite
}
