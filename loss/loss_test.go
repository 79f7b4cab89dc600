package loss

import "math"
import "testing"

import "github.com/stretchr/testify/assert"
import "gonum.org/v1/gonum/mat"

func TestReconstruction(t *testing.T) {
	out := mat.NewDense(1, 4, []float64{0.5, -0.5, 0, 1})
	tgt := mat.NewDense(1, 4, []float64{1, -1, -0.25, 1})
	// |0.5-1| + 32*|-0.5+1| + 32*|0+0.25| + 0 = 0.5 + 16 + 8
	assert.InDelta(t, 24.5/4, Reconstruction(out, tgt), 1e-12)

	g := ReconstructionGrad(out, tgt)
	assert.InDeltaSlice(t, []float64{-0.25, 8, 8, 0}, g.RawRowView(0), 1e-12)
}

func TestKLDZeroAtPrior(t *testing.T) {
	m := mat.NewDense(2, 3, nil)
	lv := mat.NewDense(2, 3, nil)
	assert.InDelta(t, 0, KLD(m, lv), 1e-12)

	dm, dlv := KLDGrad(m, lv)
	assert.Equal(t, 0.0, mat.Sum(dm))
	assert.Equal(t, 0.0, mat.Sum(dlv))
}

func TestKLDValue(t *testing.T) {
	m := mat.NewDense(1, 2, []float64{1, 0})
	lv := mat.NewDense(1, 2, []float64{0, math.Log(2)})
	// -0.5 * ((1+0-1-1) + (1+ln2-0-2)) / 2
	want := -0.5 * ((-1) + (math.Log(2) - 1)) / 2
	assert.InDelta(t, want, KLD(m, lv), 1e-12)
}

func TestKLDGradNumeric(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0.3, -1.2, 0.7, 0.1})
	lv := mat.NewDense(2, 2, []float64{-0.5, 0.4, 1.1, -2})
	dm, dlv := KLDGrad(m, lv)
	const h = 1e-6
	for _, c := range []struct {
		value, grad *mat.Dense
	}{{m, dm}, {lv, dlv}} {
		data := c.value.RawMatrix().Data
		for i := range data {
			orig := data[i]
			data[i] = orig + h
			plus := KLD(m, lv)
			data[i] = orig - h
			minus := KLD(m, lv)
			data[i] = orig
			assert.InDelta(t, (plus-minus)/(2*h), c.grad.RawMatrix().Data[i], 1e-6)
		}
	}
}

func TestVoxelDifference(t *testing.T) {
	out := mat.NewDense(2, 2, []float64{0.5, -0.5, 0.1, 0})
	tgt := mat.NewDense(2, 2, []float64{1, 1, -1, -1})
	// signs differ at positions 1 and 2; zero output counts as no disagreement
	assert.InDelta(t, 0.5, VoxelDifference(out, tgt), 1e-12)
}

func TestShapeMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		Reconstruction(mat.NewDense(1, 2, nil), mat.NewDense(2, 1, nil))
	})
}
