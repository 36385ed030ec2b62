package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint_LongitudeFirst(t *testing.T) {
	point, err := parsePoint("POINT(22.9444 40.6401)")

	require.NoError(t, err)
	assert.Equal(t, 40.6401, point.Latitude)
	assert.Equal(t, 22.9444, point.Longitude)
}

func TestParsePoint_Malformed(t *testing.T) {
	for _, wkt := range []string{"", "POINT()", "POINT(22.9)", "LINESTRING(0 0, 1 1)"} {
		_, err := parsePoint(wkt)
		assert.Error(t, err, "wkt %q should not parse", wkt)
	}
}

func TestToIntSlice(t *testing.T) {
	assert.Equal(t, []int{1, 4, 6}, toIntSlice([]int32{1, 4, 6}))
	assert.Empty(t, toIntSlice(nil))
}
