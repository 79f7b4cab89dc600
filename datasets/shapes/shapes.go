package shapes

import "math"
import "math/rand/v2"

import "github.com/neurlang/voxelvae/datasets/voxels"
import "github.com/neurlang/voxelvae/parallel"

// Kind is a primitive shape family.
type Kind byte

const (
	Sphere Kind = iota
	Box
	Cylinder

	kinds = 3
)

// truncation is the distance, in voxels, at which signed distances saturate at +-1.
const truncation = 3

// Shape is one primitive in normalized [0, 1]^3 coordinates.
type Shape struct {
	Kind   Kind
	Center [3]float64
	Size   [3]float64
}

// Random draws a primitive that fits inside the unit cube.
func Random(rng *rand.Rand) Shape {
	s := Shape{Kind: Kind(rng.IntN(kinds))}
	for i := range s.Size {
		s.Size[i] = 0.12 + 0.2*rng.Float64()
	}
	if s.Kind == Sphere {
		s.Size[1], s.Size[2] = s.Size[0], s.Size[0]
	}
	for i := range s.Center {
		s.Center[i] = 0.5 + (rng.Float64()-0.5)*(0.9-2*s.Size[i])
	}
	return s
}

// Distance returns the signed distance from p to the shape surface. It is negative inside.
func (s Shape) Distance(p [3]float64) float64 {
	var q [3]float64
	for i := range q {
		q[i] = p[i] - s.Center[i]
	}
	switch s.Kind {
	case Box:
		var outside, inside float64 = 0, math.Inf(-1)
		for i := range q {
			d := math.Abs(q[i]) - s.Size[i]
			outside += math.Max(d, 0) * math.Max(d, 0)
			inside = math.Max(inside, d)
		}
		return math.Sqrt(outside) + math.Min(inside, 0)
	case Cylinder:
		dr := math.Hypot(q[0], q[2]) - s.Size[0]
		dh := math.Abs(q[1]) - s.Size[1]
		return math.Min(math.Max(dr, dh), 0) + math.Hypot(math.Max(dr, 0), math.Max(dh, 0))
	}
	return math.Sqrt(q[0]*q[0]+q[1]*q[1]+q[2]*q[2]) - s.Size[0]
}

// Rasterize samples the shape at voxel centers of a resolution^3 grid, x-major,
// storing truncated signed distances in [-1, 1].
func (s Shape) Rasterize(resolution int, dst []float32) {
	step := 1 / float64(resolution)
	scale := float64(resolution) / truncation
	i := 0
	for x := 0; x < resolution; x++ {
		for y := 0; y < resolution; y++ {
			for z := 0; z < resolution; z++ {
				p := [3]float64{(float64(x) + 0.5) * step, (float64(y) + 0.5) * step, (float64(z) + 0.5) * step}
				v := s.Distance(p) * scale
				dst[i] = float32(math.Max(-1, math.Min(1, v)))
				i++
			}
		}
	}
}

// Generate creates n random shapes. Shape i is drawn from a generator seeded with
// (seed, i), so the result does not depend on scheduling.
func Generate(n, resolution int, seed uint64) (*voxels.Dataset, error) {
	cells := resolution * resolution * resolution
	vox := make([]float32, n*cells)
	parallel.ForEach(n, parallel.Threads(), func(i int) {
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		Random(rng).Rasterize(resolution, vox[i*cells:(i+1)*cells])
	})
	return voxels.New(resolution, vox)
}
