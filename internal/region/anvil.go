// Package region reads Minecraft Anvil region files: a 32×32 grid of
// independently compressed chunks behind an 8 KiB header.
//
// Reader is a direct generalization of astei/anvil2slime's AnvilReader
// (anvil_read.go): same sector table, same seek-and-read-full chunk
// body, same compression-tag switch. It is extended to cover the full
// compression tag space a save can contain and to report per-slot
// outcomes via a bitset instead of assuming success.
package region

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/willf/bitset"
)

const (
	maxChunks  = 1024
	sectorSize = 4096
	gridWidth  = 32
)

// CompressionTag is the one-byte compression scheme tag that precedes
// every chunk payload.
type CompressionTag byte

const (
	CompressionGZip     CompressionTag = 1
	CompressionZlib     CompressionTag = 2
	CompressionUncompr  CompressionTag = 3
	CompressionLZ4      CompressionTag = 4
	CompressionCustom   CompressionTag = 5
)

var (
	ErrNoChunk             = errors.New("region: chunk not present")
	ErrInvalidChunkLength  = errors.New("region: invalid chunk length")
	ErrUnsupportedCompress = errors.New("region: unsupported compression tag")
)

// Reader reads chunk payloads out of a single .mca file. Not safe for
// concurrent use by multiple goroutines — callers scan one region file
// per worker.
type Reader struct {
	source      io.ReadSeeker
	sectorTable [maxChunks]int32
	Name        string
}

// Open wraps an already-open file (or any ReadSeeker) as a region Reader,
// taking ownership of the provided source.
func Open(source io.ReadSeeker) (*Reader, error) {
	r := &Reader{source: source}
	if f, ok := source.(*os.File); ok {
		r.Name = f.Name()
	}
	if err := r.readSectorTable(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) readSectorTable() error {
	if _, err := r.source.Seek(0, io.SeekStart); err != nil {
		return err
	}

	raw := make([]byte, sectorSize)
	if _, err := io.ReadFull(r.source, raw); err != nil {
		return fmt.Errorf("region: reading sector table: %w", err)
	}

	return binary.Read(bytes.NewReader(raw), binary.BigEndian, &r.sectorTable)
}

// ChunkExists reports whether the chunk at region-relative (x, z) has an
// allocated sector, without reading its payload.
func (r *Reader) ChunkExists(x, z int) bool {
	return r.sectorTable[x+z*gridWidth] != 0
}

// ReadChunk decompresses and returns a reader over the chunk's raw NBT
// bytes at region-relative (x, z). Callers pass the result straight to
// nbt.NewDecoder.
func (r *Reader) ReadChunk(x, z int) (io.Reader, error) {
	offset := r.sectorTable[x+z*gridWidth]
	sectorNumber := offset >> 8
	occupiedSectors := offset & 0xff
	if sectorNumber == 0 {
		return nil, ErrNoChunk
	}

	if _, err := r.source.Seek(int64(sectorNumber)*sectorSize, io.SeekStart); err != nil {
		return nil, err
	}

	sectorData := make([]byte, int(occupiedSectors)*sectorSize)
	if _, err := io.ReadFull(r.source, sectorData); err != nil {
		return nil, err
	}

	if len(sectorData) < 5 {
		return nil, ErrInvalidChunkLength
	}

	length := binary.BigEndian.Uint32(sectorData[:4])
	tag := CompressionTag(sectorData[4])
	body := sectorData[5:]
	if length == 0 || int(length) > len(body)+1 {
		return nil, ErrInvalidChunkLength
	}
	chunkStream := bytes.NewReader(body[:length-1])

	switch tag {
	case CompressionGZip:
		return gzip.NewReader(chunkStream)
	case CompressionZlib:
		return zlib.NewReader(chunkStream)
	case CompressionUncompr:
		return chunkStream, nil
	case CompressionLZ4, CompressionCustom:
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedCompress, tag)
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedCompress, tag)
	}
}

// Close closes the underlying source, if it supports it.
func (r *Reader) Close() error {
	if c, ok := r.source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ScanReport summarizes the outcome of visiting every allocated chunk slot
// in a region file. present/decoded/skipped are tracked as bitsets over
// the 1024 chunk slots, via willf/bitset.
type ScanReport struct {
	Present *bitset.BitSet
	Decoded *bitset.BitSet
	Skipped *bitset.BitSet
}

func NewScanReport() *ScanReport {
	return &ScanReport{
		Present: bitset.New(maxChunks),
		Decoded: bitset.New(maxChunks),
		Skipped: bitset.New(maxChunks),
	}
}

// Walk visits every present chunk slot, x-major (every z for x=0, then
// x=1, and so on), invoking fn with the
// region-relative coordinates and an opened chunk stream. fn's error marks
// that slot skipped in the report but does not abort the walk — chunks that
// fail to decompress or parse are logged and skipped.
func (r *Reader) Walk(fn func(x, z int, chunk io.Reader) error) *ScanReport {
	report := NewScanReport()

	for x := 0; x < gridWidth; x++ {
		for z := 0; z < gridWidth; z++ {
			slot := uint(x + z*gridWidth)
			if !r.ChunkExists(x, z) {
				continue
			}
			report.Present.Set(slot)

			chunk, err := r.ReadChunk(x, z)
			if err != nil {
				report.Skipped.Set(slot)
				continue
			}
			if err := fn(x, z, chunk); err != nil {
				report.Skipped.Set(slot)
				continue
			}
			report.Decoded.Set(slot)
		}
	}

	return report
}

// Counts reports the number of present, decoded, and skipped chunk slots.
func (r *ScanReport) Counts() (present, decoded, skipped uint) {
	return r.Present.Count(), r.Decoded.Count(), r.Skipped.Count()
}

// EachSkipped invokes fn with the region-relative coordinates of every
// chunk slot that was present but failed to decompress or parse.
func (r *ScanReport) EachSkipped(fn func(x, z int)) {
	for x := 0; x < gridWidth; x++ {
		for z := 0; z < gridWidth; z++ {
			if r.Skipped.Test(uint(x + z*gridWidth)) {
				fn(x, z)
			}
		}
	}
}
