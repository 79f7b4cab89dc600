package shapes

import "math/rand/v2"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestDistanceSign(t *testing.T) {
	for _, k := range []Kind{Sphere, Box, Cylinder} {
		s := Shape{Kind: k, Center: [3]float64{0.5, 0.5, 0.5}, Size: [3]float64{0.2, 0.2, 0.2}}
		assert.Less(t, s.Distance([3]float64{0.5, 0.5, 0.5}), 0.0, "center of kind %d", k)
		assert.Greater(t, s.Distance([3]float64{0.95, 0.95, 0.95}), 0.0, "corner of kind %d", k)
	}
	s := Shape{Kind: Sphere, Center: [3]float64{0.5, 0.5, 0.5}, Size: [3]float64{0.25, 0.25, 0.25}}
	assert.InDelta(t, 0.0, s.Distance([3]float64{0.75, 0.5, 0.5}), 1e-12)
}

func TestRandomFitsUnitCube(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		s := Random(rng)
		for j := range s.Center {
			assert.GreaterOrEqual(t, s.Center[j]-s.Size[j], 0.0)
			assert.LessOrEqual(t, s.Center[j]+s.Size[j], 1.0)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(6, 8, 42)
	require.NoError(t, err)
	b, err := Generate(6, 8, 42)
	require.NoError(t, err)
	require.Equal(t, 6, a.Size)
	for i := 0; i < a.Size; i++ {
		assert.Equal(t, a.Grid(i), b.Grid(i))
	}

	var inside, outside int
	for _, v := range a.Grid(0) {
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
		if v < 0 {
			inside++
		} else {
			outside++
		}
	}
	assert.Positive(t, inside)
	assert.Positive(t, outside)
}
