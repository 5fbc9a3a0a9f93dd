package errors_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packleader/derbytally/pkg/errors"
)

func TestValidationError(t *testing.T) {
	err := errors.NewValidationError("mapping", "Direwolf", "maps to unknown class Direwolf")
	assert.Contains(t, err.Error(), "mapping")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestUnmappedLabelsError(t *testing.T) {
	err := errors.NewUnmappedLabelsError([]string{"Mystery A", "Mystery B"})
	assert.True(t, errors.IsUnmappedLabel(err))
	assert.Contains(t, err.Error(), "Mystery A, Mystery B")

	var unmapped *errors.UnmappedLabelsError
	require.True(t, errors.As(err, &unmapped))
	assert.Equal(t, []string{"Mystery A", "Mystery B"}, unmapped.Labels)
}

func TestWrapIO(t *testing.T) {
	assert.NoError(t, errors.WrapIO("read", "x.yaml", nil))

	cause := &fs.PathError{Op: "open", Path: "x.yaml", Err: fs.ErrNotExist}
	err := errors.WrapIO("read", "x.yaml", cause)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x.yaml")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestWrapParse(t *testing.T) {
	assert.NoError(t, errors.WrapParse("yaml", "x.yaml", nil))

	cause := errors.New("unexpected node")
	err := errors.WrapParse("yaml", "x.yaml", cause)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
	assert.True(t, errors.Is(err, cause))
}
