package pipeline

import (
	"image"

	"github.com/sirupsen/logrus"

	"github.com/AndrewKvalheim/little-a-map/internal/cache"
	"github.com/AndrewKvalheim/little-a-map/internal/ltmerr"
	"github.com/AndrewKvalheim/little-a-map/internal/mapitem"
	"github.com/AndrewKvalheim/little-a-map/internal/palette"
	"github.com/AndrewKvalheim/little-a-map/internal/tile"
)

// renderAndWriteTile renders one native-zoom tile's pixels (always, since
// a coarser mip may need them even when this tile's own output is
// unchanged) and, unless its signature already matches what's on disk,
// encodes and writes it plus its meta.json. Caching only ever skips the
// expensive output step, never the in-memory render other tiles depend on.
func renderAndWriteTile(opts Options, coord tile.Coord, contributors []*mapitem.MapItem, table []palette.RGB, tally *ltmerr.Tally) (img *image.RGBA, wrote bool) {
	rendered, nonEmpty := tile.RenderNative(coord, contributors, table)
	if !nonEmpty {
		return nil, false
	}

	sig := cache.Compute(coord, contributors)
	sigPath := tile.SignaturePath(opts.OutputDir, coord)

	if !opts.Force {
		if existing, ok := cache.ReadSidecar(sigPath); ok && existing.Equal(sig) {
			return rendered, false
		}
	}

	if err := writeTileOutput(opts.OutputDir, coord, rendered, sig); err != nil {
		tally.AddFailedTileWrite()
		logrus.WithError(&ltmerr.PerTile{Zoom: coord.Zoom, X: int(coord.X), Y: int(coord.Y), Cause: err}).Warn("could not write tile")
		return rendered, false
	}

	ids := make([]uint32, len(contributors))
	for i, c := range contributors {
		ids[i] = c.ID
	}
	if err := tile.WriteMeta(opts.OutputDir, coord, ids); err != nil {
		logrus.WithError(err).WithField("tile", coord).Warn("could not write tile metadata")
	}

	return rendered, true
}

// renderMipLevel builds every mip tile at the given zoom from the
// previous level's in-memory images, writes any whose signature changed,
// and returns the new level's images keyed by coordinate, for the next
// mip level (or map artifact / pruning accounting) to consume.
func renderMipLevel(
	opts Options,
	zoom int,
	childImages map[tile.Coord]*image.RGBA,
	contributorsByCoord map[tile.Coord][]*mapitem.MapItem,
	plan *cache.Plan,
	report *RenderReport,
	tally *ltmerr.Tally,
) map[tile.Coord]*image.RGBA {
	parents := make(map[tile.Coord][4]*image.RGBA)
	parentGroups := make(map[tile.Coord][][]*mapitem.MapItem)

	for childCoord, img := range childImages {
		parentCoord, ok := childCoord.Parent()
		if !ok || parentCoord.Zoom != zoom {
			continue
		}
		children := parents[parentCoord]
		children[childCoord.Quadrant()] = img
		parents[parentCoord] = children
		parentGroups[parentCoord] = append(parentGroups[parentCoord], contributorsByCoord[childCoord])
	}

	levelImages := make(map[tile.Coord]*image.RGBA, len(parents))

	for parentCoord, children := range parents {
		img, nonEmpty := tile.BuildMip(children)
		if !nonEmpty {
			continue
		}
		levelImages[parentCoord] = img

		contributors := cache.ContributorSet(parentGroups[parentCoord]...)
		contributorsByCoord[parentCoord] = contributors
		plan.AddTile(parentCoord.Zoom, parentCoord.X, parentCoord.Y)

		sig := cache.Compute(parentCoord, contributors)
		sigPath := tile.SignaturePath(opts.OutputDir, parentCoord)

		if !opts.Force {
			if existing, ok := cache.ReadSidecar(sigPath); ok && existing.Equal(sig) {
				continue
			}
		}

		if err := writeTileOutput(opts.OutputDir, parentCoord, img, sig); err != nil {
			tally.AddFailedTileWrite()
			logrus.WithError(&ltmerr.PerTile{Zoom: parentCoord.Zoom, X: int(parentCoord.X), Y: int(parentCoord.Y), Cause: err}).Warn("could not write mip tile")
			continue
		}
		report.TilesRendered++
	}

	return levelImages
}

func writeTileOutput(outputDir string, coord tile.Coord, img *image.RGBA, sig cache.Signature) error {
	data, err := tile.EncodeLossless(img)
	if err != nil {
		return err
	}
	if err := tile.WriteAtomic(tile.Path(outputDir, coord), data); err != nil {
		return err
	}
	return cache.WriteSidecar(tile.SignaturePath(outputDir, coord), sig)
}
