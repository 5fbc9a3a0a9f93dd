package derbytally_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packleader/derbytally"
	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/errors"
	"github.com/packleader/derbytally/pkg/logging"
	"github.com/packleader/derbytally/pkg/ranking"
	"github.com/packleader/derbytally/pkg/records"
)

func raw(first string, car int, label string, time float64) records.Raw {
	return records.Raw{
		FirstName:  first,
		LastName:   "Racer",
		CarNumber:  car,
		ClassLabel: label,
		Completed:  time > 0,
		FinishTime: time,
	}
}

func TestRun(t *testing.T) {
	bundles := []records.Bundle{
		{
			Source: "gprm",
			Year:   2026,
			Mapping: classes.Mapping{
				"Wolves":      classes.Wolf,
				"Bears":       classes.Bear,
				"Wolf Finals": classes.GrandFinals,
			},
			Records: []records.Raw{
				raw("Ada", 1, "Wolves", 3.01),
				raw("Ada", 1, "Wolves", 3.05),
				raw("Ben", 2, "Wolves", 3.10),
				raw("Ben", 2, "Wolves", 3.12),
				raw("Dee", 4, "Bears", 3.02),
				raw("Ada", 1, "Wolf Finals", 3.00),
			},
		},
		{
			Source: "derbynet",
			Year:   2026,
			Mapping: classes.Mapping{
				"wolf (den 4)": classes.Wolf,
			},
			Records: []records.Raw{
				raw("Cal", 3, "wolf (den 4)", 3.40),
			},
		},
	}

	result, err := derbytally.Run(context.Background(), bundles,
		derbytally.WithMethod(ranking.MethodDropSlowest),
		derbytally.WithFieldSize(3),
		derbytally.WithWinnerExclusion(1))
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.GeneratedAt.IsZero())
	assert.Len(t, result.Records, 7)
	assert.True(t, result.Report.Valid())

	wolf := result.Standings.Class(classes.Wolf)
	require.NotNil(t, wolf)
	require.Len(t, wolf.Rows, 3)

	// Ada won the finals, so she leads the Wolf order without a place label.
	assert.True(t, wolf.Rows[0].Excluded)
	assert.Equal(t, "Ada", wolf.Rows[0].Stats.Racer.FirstName)
	assert.Equal(t, 1, wolf.Rows[1].Place)
	assert.Equal(t, "Ben", wolf.Rows[1].Stats.Racer.FirstName)
	assert.Equal(t, 2, wolf.Rows[2].Place)

	// The den finalist is still the rank-1 finisher.
	assert.Contains(t, result.Standings.Finalists, records.RacerKey{
		FirstName: "Ada", LastName: "Racer", CarNumber: 1,
	})
}

func TestRunLogsCarryRunID(t *testing.T) {
	bundles := []records.Bundle{
		{
			Source:  "gprm",
			Mapping: classes.Mapping{"Wolves": classes.Wolf},
			Records: []records.Raw{
				raw("Ada", 1, "Wolves", 3.01),
			},
		},
	}

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	result, err := derbytally.Run(ctx, bundles)
	require.NoError(t, err)

	// Every pipeline log line carries the run ID from the context logger.
	assert.True(t, tl.Contains("run_id"))
	assert.True(t, tl.Contains(result.RunID))
	assert.True(t, tl.Contains("Built canonical record table"))

	tl.Reset()
	second, err := derbytally.Run(ctx, bundles)
	require.NoError(t, err)
	assert.NotEqual(t, result.RunID, second.RunID)
	assert.False(t, tl.Contains(result.RunID))
	assert.True(t, tl.Contains(second.RunID))
}

func TestRunUnmappedLabel(t *testing.T) {
	bundles := []records.Bundle{
		{
			Source:  "gprm",
			Mapping: classes.Mapping{"Wolves": classes.Wolf},
			Records: []records.Raw{
				raw("Ada", 1, "Wolves", 3.01),
				raw("Ben", 2, "Open Exhibition", 3.10),
			},
		},
	}

	result, err := derbytally.Run(context.Background(), bundles)
	require.Error(t, err)
	assert.Nil(t, result)

	var unmapped *errors.UnmappedLabelsError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, []string{"Open Exhibition"}, unmapped.Labels)
}

func TestRunReportsFindings(t *testing.T) {
	bundles := []records.Bundle{
		{
			Source: "gprm",
			Mapping: classes.Mapping{
				"Wolves": classes.Wolf,
				"Bears":  classes.Bear,
			},
			Records: []records.Raw{
				raw("Ada", 1, "Wolves", 3.01),
				raw("Ada", 1, "Bears", 3.02),
			},
		},
	}

	// A racer spanning two dens is a finding, not a run failure.
	result, err := derbytally.Run(context.Background(), bundles)
	require.NoError(t, err)
	assert.False(t, result.Report.Valid())
	assert.NotNil(t, result.Standings)
}
