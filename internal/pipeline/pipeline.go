// Package pipeline sequences source discovery, map-id search, map
// decoding, tile compositing, and cache pruning behind barriers — each
// phase completing before the next starts — and produces the run's two
// summary lines.
package pipeline

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AndrewKvalheim/little-a-map/internal/bannercatalog"
	"github.com/AndrewKvalheim/little-a-map/internal/cache"
	"github.com/AndrewKvalheim/little-a-map/internal/ltmerr"
	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
	"github.com/AndrewKvalheim/little-a-map/internal/mapsearch"
	"github.com/AndrewKvalheim/little-a-map/internal/palette"
	"github.com/AndrewKvalheim/little-a-map/internal/progress"
	"github.com/AndrewKvalheim/little-a-map/internal/tile"
	"github.com/AndrewKvalheim/little-a-map/internal/worldsave"
)

// ToolVersion is the cache-busting query string substituted into
// index.html. Signatures fold in cache.ToolVersion, not this value.
const ToolVersion = "1"

// Options configures one run.
type Options struct {
	SaveDir   string
	OutputDir string
	Force     bool
	Quiet     bool
}

// DiscoveryReport covers the values of the run's first stdout line.
type DiscoveryReport struct {
	MapItems      int
	BlockRegions  int
	EntityRegions int
	Players       int
	Elapsed       time.Duration
}

// RenderReport covers the second stdout line.
type RenderReport struct {
	TilesRendered int
	MapsRendered  int
	TilesPruned   int
	MapsPruned    int
	Elapsed       time.Duration
}

// Run executes all five stages in order and returns both summary reports.
func Run(ctx context.Context, opts Options) (*DiscoveryReport, *RenderReport, error) {
	tally := ltmerr.NewTally()

	discoveryStart := time.Now()

	save, err := worldsave.Open(opts.SaveDir)
	if err != nil {
		return nil, nil, ltmerr.Setup("opening save: %w", err)
	}

	var level *worldsave.LevelInfo
	if save.LevelDat != nil {
		level, err = worldsave.ReadLevelInfo(save.LevelDat.Path)
		if err != nil {
			logrus.WithError(err).Warn("could not read level.dat; spawn and palette defaults will be used")
		}
	}
	if level == nil {
		level = &worldsave.LevelInfo{}
	}

	indexPath := filepath.Join(opts.OutputDir, ".little-a-map-cache")
	discoveryIdx := cache.Load(indexPath)
	if opts.Force {
		discoveryIdx = cache.NewIndex()
	}

	scanTotal := len(save.BlockRegions) + len(save.EntityRegions) + len(save.PlayerFiles)
	scanProgress := progress.New(os.Stderr, opts.Quiet, "scanning", scanTotal)
	scanResult := mapsearch.Scan(ctx, save, discoveryIdx, tally, scanProgress)
	scanProgress.Done()

	if err := cache.Save(indexPath, discoveryIdx); err != nil {
		logrus.WithError(err).Debug("could not persist discovery cache")
	}

	decodeProgress := progress.New(os.Stderr, opts.Quiet, "decoding", len(scanResult.MapIDs))
	items := mapitem.DecodeAll(ctx, opts.SaveDir, scanResult.MapIDs, tally, decodeProgress)
	decodeProgress.Done()

	discoveryReport := &DiscoveryReport{
		MapItems:      len(items),
		BlockRegions:  scanResult.BlockRegions,
		EntityRegions: scanResult.EntityRegions,
		Players:       scanResult.Players,
		Elapsed:       time.Since(discoveryStart),
	}

	renderStart := time.Now()
	renderReport, err := render(opts, level, items, tally)
	if err != nil {
		return discoveryReport, nil, err
	}
	renderReport.Elapsed = time.Since(renderStart)

	skippedFiles, skippedChunks, missingMaps, failedTiles := tally.Counts()
	logrus.WithFields(logrus.Fields{
		"skipped_files":  skippedFiles,
		"skipped_chunks": skippedChunks,
		"missing_maps":   missingMaps,
		"failed_tiles":   failedTiles,
	}).Debug("run complete")

	return discoveryReport, renderReport, nil
}

func render(opts Options, level *worldsave.LevelInfo, items []*mapitem.MapItem, tally *ltmerr.Tally) (*RenderReport, error) {
	table := palette.Table(level.DataVersion)

	overworld := make([]*mapitem.MapItem, 0, len(items))
	for _, item := range items {
		if item.Dimension == mapitem.DimensionOverworld {
			overworld = append(overworld, item)
		}
	}

	assignments, rejected := tile.Assign(overworld)
	for _, id := range rejected {
		logrus.WithField("map", id).Warn("map coverage exceeds tile coordinate range; skipped")
	}

	plan := cache.NewPlan()
	report := &RenderReport{}

	contributorsByCoord := make(map[tile.Coord][]*mapitem.MapItem, len(assignments))
	for coord, contributors := range assignments {
		contributorsByCoord[coord] = contributors
	}

	levelImages := make(map[tile.Coord]*image.RGBA, len(assignments))
	maxContributors := 0

	for coord, contributors := range assignments {
		if len(contributors) > maxContributors {
			maxContributors = len(contributors)
		}

		img, wrote := renderAndWriteTile(opts, coord, contributors, table, tally)
		if img != nil {
			levelImages[coord] = img
			plan.AddTile(coord.Zoom, coord.X, coord.Y)
		}
		if wrote {
			report.TilesRendered++
		}
	}

	for zoom := 1; zoom <= tile.MaxZoom; zoom++ {
		levelImages = renderMipLevel(opts, zoom, levelImages, contributorsByCoord, plan, report, tally)
	}

	for _, item := range overworld {
		plan.AddMap(item.ID)
		wrote, err := renderMapArtifact(opts, item, table)
		if err != nil {
			logrus.WithError(err).WithField("map", item.ID).Warn("could not write map artifact")
			continue
		}
		if wrote {
			report.MapsRendered++
		}
	}

	fc := bannercatalog.Build(overworld)
	if err := bannercatalog.WriteFile(opts.OutputDir, fc); err != nil {
		return report, ltmerr.Setup("writing banners.json: %w", err)
	}

	if err := writeIndex(opts.OutputDir, level, maxContributors); err != nil {
		return report, ltmerr.Setup("writing index.html: %w", err)
	}

	pruneResult, err := cache.Prune(opts.OutputDir, plan)
	if err != nil {
		logrus.WithError(err).Warn("pruning orphaned tiles failed")
	}
	report.TilesPruned = pruneResult.TilesPruned
	report.MapsPruned = pruneResult.MapsPruned

	return report, nil
}
