package vae

import "bytes"
import "math/rand/v2"
import "path/filepath"
import "testing"

import "github.com/neurlang/voxelvae/loss"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"
import "gonum.org/v1/gonum/mat"

func tiny(t *testing.T, seed uint64) *Autoencoder {
	t.Helper()
	a, err := New(Config{Resolution: 2, Hidden: []int{5}, Latent: 3}, rand.New(rand.NewPCG(seed, seed)))
	require.NoError(t, err)
	return a
}

func batch(rng *rand.Rand, rows, cols int) *mat.Dense {
	x := mat.NewDense(rows, cols, nil)
	x.Apply(func(_, _ int, _ float64) float64 { return rng.Float64()*2 - 1 }, x)
	return x
}

func TestNewRejectsBadConfig(t *testing.T) {
	rng := rand.New(rand.NewPCG(0, 0))
	_, err := New(Config{Resolution: 0, Latent: 2}, rng)
	assert.Error(t, err)
	_, err = New(Config{Resolution: 2, Latent: 2, Hidden: []int{0}}, rng)
	assert.Error(t, err)
}

func TestForwardShapes(t *testing.T) {
	a := tiny(t, 1)
	x := batch(rand.New(rand.NewPCG(2, 2)), 4, 8)
	out, mean, lv := a.Forward(x, true)
	r, c := out.Dims()
	assert.Equal(t, [2]int{4, 8}, [2]int{r, c})
	r, c = mean.Dims()
	assert.Equal(t, [2]int{4, 3}, [2]int{r, c})
	r, c = lv.Dims()
	assert.Equal(t, [2]int{4, 3}, [2]int{r, c})
	for _, v := range out.RawMatrix().Data {
		assert.True(t, v > -1 && v < 1)
	}
	assert.Len(t, a.Params(), 2*5)
}

func TestEvalForwardIsDeterministic(t *testing.T) {
	a := tiny(t, 1)
	x := batch(rand.New(rand.NewPCG(2, 2)), 3, 8)
	o1, _, _ := a.Forward(x, false)
	o2, _, _ := a.Forward(x, false)
	assert.True(t, mat.Equal(o1, o2))
}

// objective evaluates the training loss with a fixed noise sample so it can be
// differentiated numerically.
func objective(a *Autoencoder, x *mat.Dense, seed uint64) float64 {
	a.rng = rand.New(rand.NewPCG(seed, seed))
	out, mean, lv := a.Forward(x, true)
	var sq mat.Dense
	sq.MulElem(out, out)
	return mat.Sum(&sq) + loss.KLD(mean, lv)
}

func TestGradientCheck(t *testing.T) {
	a := tiny(t, 3)
	x := batch(rand.New(rand.NewPCG(4, 4)), 2, 8)
	const seed = 99

	a.rng = rand.New(rand.NewPCG(seed, seed))
	out, mean, lv := a.Forward(x, true)
	dOut := mat.NewDense(2, 8, nil)
	dOut.Scale(2, out)
	dm, dlv := loss.KLDGrad(mean, lv)
	a.Backward(dOut, dm, dlv)

	const h = 1e-6
	for _, p := range a.Params() {
		data := p.Value.RawMatrix().Data
		grad := append([]float64(nil), p.Grad.RawMatrix().Data...)
		for i := range data {
			orig := data[i]
			data[i] = orig + h
			plus := objective(a, x, seed)
			data[i] = orig - h
			minus := objective(a, x, seed)
			data[i] = orig
			num := (plus - minus) / (2 * h)
			if d := num - grad[i]; d > 1e-4 || d < -1e-4 {
				t.Fatalf("%s[%d]: analytic %v numeric %v", p.Name, i, grad[i], num)
			}
		}
	}
}

func TestWeightsRoundtrip(t *testing.T) {
	a := tiny(t, 5)
	b := tiny(t, 6)
	path := filepath.Join(t.TempDir(), "models", "autoencoder.json.zlib")
	require.NoError(t, a.WriteZlibWeightsToFile(path))
	require.NoError(t, b.ReadZlibWeightsFromFile(path))

	pa, pb := a.Params(), b.Params()
	for i := range pa {
		assert.True(t, mat.Equal(pa[i].Value, pb[i].Value), pa[i].Name)
	}
}

func TestReadRejectsOtherArchitecture(t *testing.T) {
	a := tiny(t, 5)
	var buf bytes.Buffer
	require.NoError(t, a.WriteZlibWeights(&buf))

	other, err := New(Config{Resolution: 2, Hidden: []int{6}, Latent: 3}, rand.New(rand.NewPCG(0, 0)))
	require.NoError(t, err)
	assert.Error(t, other.ReadZlibWeights(&buf))
}

func TestReadMissingFile(t *testing.T) {
	a := tiny(t, 5)
	assert.Error(t, a.ReadZlibWeightsFromFile(filepath.Join(t.TempDir(), "nope")))
}
