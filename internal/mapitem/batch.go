package mapitem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/AndrewKvalheim/little-a-map/internal/ltmerr"
	"github.com/AndrewKvalheim/little-a-map/internal/progress"
	"github.com/AndrewKvalheim/little-a-map/internal/workpool"
)

// DecodeAll decodes data/map_<id>.dat for every id discovered by search,
// skipping (and tallying) any id whose file is missing or unreadable
// rather than aborting the run.
func DecodeAll(ctx context.Context, saveRoot string, ids map[uint32]struct{}, tally *ltmerr.Tally, reporter *progress.Reporter) []*MapItem {
	ordered := make([]uint32, 0, len(ids))
	for id := range ids {
		ordered = append(ordered, id)
	}

	results := workpool.Run(ctx, ordered, func(ctx context.Context, id uint32) *MapItem {
		defer reporter.Advance(1)

		path := filepath.Join(saveRoot, "data", fmt.Sprintf("map_%d.dat", id))
		if _, err := os.Stat(path); err != nil {
			logrus.WithField("map", id).Debug("referenced map file not found")
			tally.AddMissingMap()
			return nil
		}

		item, err := Decode(path, id)
		if err != nil {
			logrus.WithError(&ltmerr.PerItem{MapID: id, Cause: err}).Warn("could not decode map")
			tally.AddMissingMap()
			return nil
		}
		return item
	})

	items := make([]*MapItem, 0, len(results))
	for _, item := range results {
		if item != nil {
			items = append(items, item)
		}
	}
	return items
}
