package records_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packleader/derbytally/pkg/classes"
	"github.com/packleader/derbytally/pkg/records"
)

func TestExport(t *testing.T) {
	table := records.Table{
		{
			Raw: records.Raw{
				Year:        2024,
				FirstName:   "Sam",
				LastName:    "Harper",
				CarNumber:   42,
				CarName:     "Blue Streak",
				ClassLabel:  "Wolves Den",
				RoundID:     1,
				Heat:        2,
				Lane:        3,
				Completed:   true,
				FinishTime:  3.105,
				FinishPlace: 1,
			},
			OriginalLabel: "Wolves Den",
			StandardClass: classes.Wolf,
			Racer:         records.RacerKey{FirstName: "Sam", LastName: "Harper", CarNumber: 42},
		},
		{
			Raw: records.Raw{
				Year:       2024,
				FirstName:  "Lee",
				LastName:   "Nguyen",
				CarNumber:  9,
				ClassLabel: "Wolves Den",
				FinishTime: 0, // did not finish, still exported
			},
			OriginalLabel: "Wolves Den",
			StandardClass: classes.Wolf,
			Racer:         records.RacerKey{FirstName: "Lee", LastName: "Nguyen", CarNumber: 9},
		},
	}

	rows := table.Export()
	require.Len(t, rows, 2)
	require.Len(t, rows[0], len(records.ExportHeader))

	assert.Equal(t, []string{
		"2024", "Sam", "Harper", "42", "Blue Streak",
		"Wolf", "Wolves Den",
		"1", "2", "3", "true", "3.105", "1",
		"Sam Harper", "Sam Harper #42 / Wolf",
	}, rows[0])

	// DNF rows render an empty finish time.
	assert.Equal(t, "", rows[1][11])
	assert.Equal(t, "false", rows[1][10])
}

func TestRacerKeyStrings(t *testing.T) {
	key := records.RacerKey{FirstName: "Sam", LastName: "Harper", CarNumber: 42}
	assert.Equal(t, "Sam Harper", key.FullName())
	assert.Equal(t, "Sam Harper #42", key.String())
}
