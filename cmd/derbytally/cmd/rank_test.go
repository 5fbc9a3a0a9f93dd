package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankFlagSentinels(t *testing.T) {
	// Zero is a valid explicit value for both flags (a finals field with no
	// wildcard slots, an exclusion count of none), so the "not set on the
	// command line" sentinel must be negative for both.
	fieldSize := rankCmd.Flags().Lookup("field-size")
	require.NotNil(t, fieldSize)
	assert.Equal(t, "-1", fieldSize.DefValue)

	winners := rankCmd.Flags().Lookup("winners")
	require.NotNil(t, winners)
	assert.Equal(t, "-1", winners.DefValue)
}
