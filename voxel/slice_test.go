package voxel

import "strings"
import "testing"

import "github.com/stretchr/testify/assert"

func TestShade(t *testing.T) {
	assert.Equal(t, 0, Shade(1, 10))
	assert.Equal(t, 9, Shade(-1, 10))
	assert.Equal(t, 5, Shade(0, 10))
	assert.Equal(t, 0, Shade(7, 10))
	assert.Equal(t, 9, Shade(-7, 10))
}

func TestTextSlice(t *testing.T) {
	const r = 4
	grid := make([]float64, r*r*r)
	for i := range grid {
		grid[i] = 1
	}
	// inside voxel at x=2, y=1, z=3
	grid[(2*r+1)*r+3] = -1

	lines := strings.Split(strings.TrimSuffix(TextSlice(grid, r), "\n"), "\n")
	assert.Len(t, lines, r)
	for _, l := range lines {
		assert.Len(t, l, 2*r)
	}
	assert.Equal(t, "      @@", lines[1])
	assert.Equal(t, "        ", lines[0])
}

func TestTextSliceShortGrid(t *testing.T) {
	assert.Equal(t, "", TextSlice(make([]float64, 7), 2))
}
