// Package voxel renders voxel grids for the console.
package voxel

import "strings"

// shades go from outside (space) to deep inside (@).
const shades = " .:-=+*#%@"

// TextSlice renders the slice x = resolution/2 of an x-major grid. Every voxel
// becomes two characters so the slice keeps its aspect ratio in a terminal.
func TextSlice(grid []float64, resolution int) string {
	if resolution <= 0 || len(grid) < resolution*resolution*resolution {
		return ""
	}
	x := resolution / 2
	var b strings.Builder
	b.Grow(resolution * (2*resolution + 1))
	for y := 0; y < resolution; y++ {
		for z := 0; z < resolution; z++ {
			v := grid[(x*resolution+y)*resolution+z]
			c := shades[Shade(v, len(shades))]
			b.WriteByte(c)
			b.WriteByte(c)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Shade maps a signed distance in [-1, 1] to one of levels bins, 0 for fully outside
// and levels-1 for fully inside. Values out of range are clamped.
func Shade(v float64, levels int) int {
	t := 0.5 - 0.5*v
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	i := int(t * float64(levels))
	if i >= levels {
		i = levels - 1
	}
	return i
}
