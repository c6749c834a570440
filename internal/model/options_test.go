package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionListValueAndScan(t *testing.T) {
	t.Parallel()

	original := OptionList{"Paris", "London", "Berlin", "Madrid"}
	value, err := original.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Paris","London","Berlin","Madrid"]`, value)

	var fromString OptionList
	require.NoError(t, fromString.Scan(value))
	assert.Equal(t, original, fromString)

	var fromBytes OptionList
	require.NoError(t, fromBytes.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, OptionList{"a", "b"}, fromBytes)
}

func TestOptionListScanNil(t *testing.T) {
	t.Parallel()

	options := OptionList{"stale"}
	require.NoError(t, options.Scan(nil))
	assert.Nil(t, options)
}

func TestOptionListScanUnsupportedType(t *testing.T) {
	t.Parallel()

	var options OptionList
	assert.Error(t, options.Scan(42))
}
