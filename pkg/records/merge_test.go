package records_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/errors"
	"github.com/packleader/derbytally/pkg/records"
	"github.com/packleader/derbytally/pkg/stats"
)

func heat(first, last string, car int, label string, time float64) records.Raw {
	return records.Raw{
		FirstName:  first,
		LastName:   last,
		CarNumber:  car,
		ClassLabel: label,
		Completed:  time > 0,
		FinishTime: time,
	}
}

func testMapping() classes.Mapping {
	return classes.Mapping{
		"Wolves Den":  classes.Wolf,
		"Bears":       classes.Bear,
		"Grand Final": classes.GrandFinals,
		"Exhibition":  classes.Skip,
	}
}

func TestMerge(t *testing.T) {
	set := classes.DefaultSet()
	bundle := records.Bundle{
		Source:  "day1.yaml",
		Year:    2024,
		Mapping: testMapping(),
		Records: []records.Raw{
			heat("Sam", "Harper", 42, "Wolves Den", 3.10),
			heat("Sam", "Harper", 42, "Wolves Den", 3.05),
			heat("Pat", "Reyes", 7, "Exhibition", 2.99),
			heat("Max", "Okafor", 3, "Bears", 3.41),
		},
	}

	table, err := records.Merge(context.Background(), set, bundle)
	require.NoError(t, err)

	// The Exhibition row maps to skip and is dropped; everything else
	// survives in source order, no deduplication of repeat heats.
	require.Len(t, table, 3)
	assert.Equal(t, classes.Wolf, table[0].StandardClass)
	assert.Equal(t, "Wolves Den", table[0].OriginalLabel)
	assert.Equal(t, records.RacerKey{FirstName: "Sam", LastName: "Harper", CarNumber: 42}, table[0].Racer)
	assert.Equal(t, classes.Wolf, table[1].StandardClass)
	assert.Equal(t, classes.Bear, table[2].StandardClass)

	// Rows without a year inherit the bundle year.
	assert.Equal(t, 2024, table[0].Year)
}

func TestMergeUnmappedLabelsAbort(t *testing.T) {
	set := classes.DefaultSet()
	b1 := records.Bundle{
		Mapping: testMapping(),
		Records: []records.Raw{
			heat("Sam", "Harper", 42, "Wolves Den", 3.10),
			heat("Lee", "Nguyen", 9, "Mystery A", 3.20),
		},
	}
	b2 := records.Bundle{
		Mapping: testMapping(),
		Records: []records.Raw{
			heat("Kim", "Stone", 5, "Mystery B", 3.30),
		},
	}

	table, err := records.Merge(context.Background(), set, b1, b2)
	require.Error(t, err)
	assert.True(t, errors.IsUnmappedLabel(err))
	// No partial table on a precondition failure.
	assert.Nil(t, table)

	// Every offending label across all bundles is reported.
	var unmapped *errors.UnmappedLabelsError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, []string{"Mystery A", "Mystery B"}, unmapped.Labels)
}

func TestMergeOrderIndependence(t *testing.T) {
	set := classes.DefaultSet()
	b1 := records.Bundle{
		Source:  "a",
		Year:    2024,
		Mapping: testMapping(),
		Records: []records.Raw{
			heat("Sam", "Harper", 42, "Wolves Den", 3.10),
			heat("Sam", "Harper", 42, "Wolves Den", 3.40),
		},
	}
	b2 := records.Bundle{
		Source:  "b",
		Year:    2024,
		Mapping: testMapping(),
		Records: []records.Raw{
			heat("Sam", "Harper", 42, "Wolves Den", 3.05),
			heat("Max", "Okafor", 3, "Bears", 3.41),
		},
	}

	ab, err := records.Merge(context.Background(), set, b1, b2)
	require.NoError(t, err)
	ba, err := records.Merge(context.Background(), set, b2, b1)
	require.NoError(t, err)

	// Row order differs, but per-group statistics must not.
	statsAB := byRacerClass(stats.Aggregate(ab))
	statsBA := byRacerClass(stats.Aggregate(ba))
	require.Equal(t, len(statsAB), len(statsBA))
	for key, a := range statsAB {
		b, ok := statsBA[key]
		require.True(t, ok, "group %v missing after swapped merge", key)
		assert.Equal(t, a.RaceCount, b.RaceCount)
		assert.InDelta(t, a.AvgTime, b.AvgTime, 1e-9)
		assert.InDelta(t, a.AvgExceptSlowest, b.AvgExceptSlowest, 1e-9)
		assert.InDelta(t, a.Median, b.Median, 1e-9)
		assert.InDelta(t, a.StdDev, b.StdDev, 1e-9)
	}
}

type racerClassKey struct {
	racer records.RacerKey
	class classes.Name
}

func byRacerClass(groups []stats.RacerClass) map[racerClassKey]stats.RacerClass {
	out := make(map[racerClassKey]stats.RacerClass, len(groups))
	for _, g := range groups {
		out[racerClassKey{racer: g.Racer, class: g.Class}] = g
	}
	return out
}
