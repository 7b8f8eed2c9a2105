package mapsearch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"

	"github.com/AndrewKvalheim/little-a-map/internal/cache"
	"github.com/AndrewKvalheim/little-a-map/internal/ltmerr"
	"github.com/AndrewKvalheim/little-a-map/internal/nbt"
	"github.com/AndrewKvalheim/little-a-map/internal/progress"
	"github.com/AndrewKvalheim/little-a-map/internal/region"
	"github.com/AndrewKvalheim/little-a-map/internal/workpool"
	"github.com/AndrewKvalheim/little-a-map/internal/worldsave"
)

// Result is the outcome of scanning every source file of a save: the
// deduplicated union of every referenced map id, plus counts for the
// run summary.
type Result struct {
	MapIDs        map[uint32]struct{}
	BlockRegions  int
	EntityRegions int
	Players       int
}

// fileScan is one file's contribution: its referenced map ids, ready to
// merge into the aggregate Result and to record into the discovery cache.
type fileScan struct {
	path       string
	modifiedAt time.Time
	ids        map[uint32]struct{}
}

// Scan walks every region, entity region, and player file in save,
// fanned out one task per file across a bounded worker pool. Each file is
// opened at most once; per-file and per-chunk failures are logged and
// skipped, never abort the run.
//
// idx is the discovery cache, grounded on original_source/src/cache.rs: a
// file whose modification time matches idx's recorded entry is trusted
// without being reopened. idx may be nil, which disables the optimization
// but changes no result. The caller is responsible for persisting idx
// afterward.
func Scan(ctx context.Context, save *worldsave.Save, idx *cache.Index, tally *ltmerr.Tally, reporter *progress.Reporter) *Result {
	result := &Result{
		MapIDs:        make(map[uint32]struct{}),
		BlockRegions:  len(save.BlockRegions),
		EntityRegions: len(save.EntityRegions),
		Players:       len(save.PlayerFiles),
	}

	merge := func(scans []fileScan, record func(path string, modifiedAt time.Time, ids map[uint32]struct{})) {
		for _, s := range scans {
			for id := range s.ids {
				result.MapIDs[id] = struct{}{}
			}
			if idx != nil {
				record(s.path, s.modifiedAt, s.ids)
			}
		}
	}

	blockScans := workpool.Run(ctx, save.BlockRegions, func(ctx context.Context, f worldsave.SourceFile) fileScan {
		defer reporter.Advance(1)
		return fileScan{path: f.Path, modifiedAt: f.ModifiedAt, ids: scanRegionFile(f, idx, tally)}
	})
	merge(blockScans, idxRecordRegion(idx))

	entityScans := workpool.Run(ctx, save.EntityRegions, func(ctx context.Context, f worldsave.SourceFile) fileScan {
		defer reporter.Advance(1)
		return fileScan{path: f.Path, modifiedAt: f.ModifiedAt, ids: scanRegionFile(f, idx, tally)}
	})
	merge(entityScans, idxRecordRegion(idx))

	playerScans := workpool.Run(ctx, save.PlayerFiles, func(ctx context.Context, f worldsave.SourceFile) fileScan {
		defer reporter.Advance(1)
		return fileScan{path: f.Path, modifiedAt: f.ModifiedAt, ids: scanGzipNBTFile(f, idx, tally)}
	})
	merge(playerScans, idxRecordPlayer(idx))

	return result
}

func idxRecordRegion(idx *cache.Index) func(string, time.Time, map[uint32]struct{}) {
	return func(path string, modifiedAt time.Time, ids map[uint32]struct{}) { idx.RecordRegion(path, modifiedAt, ids) }
}

func idxRecordPlayer(idx *cache.Index) func(string, time.Time, map[uint32]struct{}) {
	return func(path string, modifiedAt time.Time, ids map[uint32]struct{}) { idx.RecordPlayer(path, modifiedAt, ids) }
}

func scanRegionFile(file worldsave.SourceFile, idx *cache.Index, tally *ltmerr.Tally) map[uint32]struct{} {
	path := file.Path

	if idx != nil {
		if cached, ok := idx.Lookup(idx.Regions, path, file.ModifiedAt); ok {
			return cached
		}
	}

	ids := make(map[uint32]struct{})

	f, err := os.Open(path)
	if err != nil {
		logrus.WithError(err).WithField("file", path).Warn("could not open region file")
		tally.AddSkippedFile()
		return ids
	}
	defer f.Close()

	reader, err := region.Open(f)
	if err != nil {
		logrus.WithError(&ltmerr.PerFile{Path: path, Cause: err}).Warn("could not read region header")
		tally.AddSkippedFile()
		return ids
	}
	defer reader.Close()

	report := reader.Walk(func(x, z int, chunk io.Reader) error {
		root, err := nbt.NewDecoder(chunk).Decode()
		if err != nil {
			return fmt.Errorf("chunk (%d,%d): %w", x, z, err)
		}
		for id := range CollectMapIDs(root.Value) {
			ids[id] = struct{}{}
		}
		return nil
	})

	report.EachSkipped(func(x, z int) {
		logrus.WithField("file", path).WithFields(logrus.Fields{"chunk_x": x, "chunk_z": z}).
			Warn("chunk failed to decompress or parse; skipped")
		tally.AddSkippedChunk()
	})

	present, decoded, skipped := report.Counts()
	logrus.WithFields(logrus.Fields{
		"file": path, "chunks_present": present, "chunks_decoded": decoded, "chunks_skipped": skipped,
	}).Debug("region file scanned")

	return ids
}

func scanGzipNBTFile(file worldsave.SourceFile, idx *cache.Index, tally *ltmerr.Tally) map[uint32]struct{} {
	path := file.Path

	if idx != nil {
		if cached, ok := idx.Lookup(idx.Players, path, file.ModifiedAt); ok {
			return cached
		}
	}

	ids := make(map[uint32]struct{})

	f, err := os.Open(path)
	if err != nil {
		logrus.WithError(err).WithField("file", path).Warn("could not open player file")
		tally.AddSkippedFile()
		return ids
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		logrus.WithError(&ltmerr.PerFile{Path: path, Cause: err}).Warn("player file is not gzip")
		tally.AddSkippedFile()
		return ids
	}
	defer gz.Close()

	root, err := nbt.NewDecoder(gz).Decode()
	if err != nil {
		logrus.WithError(&ltmerr.PerFile{Path: path, Cause: err}).Warn("could not decode player file")
		tally.AddSkippedFile()
		return ids
	}

	return CollectMapIDs(root.Value)
}
