package records

import (
	"context"
	"sort"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/errors"
	"github.com/packleader/derbytally/pkg/logging"
)

// Merge applies each bundle's class mapping to its raw rows and concatenates
// the surviving rows, in source order, into one canonical table.
//
// Mapping completeness is a hard precondition: if any observed label across
// any bundle lacks an entry, Merge returns an UnmappedLabelsError naming
// every offending label and produces no partial table. Rows whose label maps
// to the Skip sentinel are dropped. The step is pure and order-stable:
// merging bundles in a different order changes only row order, which no
// downstream aggregate depends on.
func Merge(ctx context.Context, set classes.Set, bundles ...Bundle) (Table, error) {
	log := logging.FromContext(ctx)

	// Validate every bundle before any row is converted.
	missing := make(map[string]bool)
	for _, b := range bundles {
		if err := b.Mapping.Validate(b.Labels(), set); err != nil {
			var unmapped *errors.UnmappedLabelsError
			if errors.As(err, &unmapped) {
				for _, label := range unmapped.Labels {
					missing[label] = true
				}
				continue
			}
			return nil, err
		}
	}
	if len(missing) > 0 {
		labels := make([]string, 0, len(missing))
		for label := range missing {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		return nil, errors.NewUnmappedLabelsError(labels)
	}

	var table Table
	for _, b := range bundles {
		kept, dropped := 0, 0
		for _, raw := range b.Records {
			target, _ := b.Mapping.Resolve(raw.ClassLabel)
			if target == classes.Skip {
				dropped++
				continue
			}
			if raw.Year == 0 {
				raw.Year = b.Year
			}
			table = append(table, Canonical{
				Raw:           raw,
				OriginalLabel: raw.ClassLabel,
				StandardClass: target,
				Racer:         raw.Key(),
			})
			kept++
		}
		log.Debug().
			Str("source", b.Source).
			Int("year", b.Year).
			Int("kept", kept).
			Int("skipped", dropped).
			Msg("Merged source bundle")
	}
	return table, nil
}
