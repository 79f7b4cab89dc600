// Package dense implements a fully connected layer on gonum matrices.
package dense

import "math"
import "math/rand/v2"

import "github.com/neurlang/voxelvae/layer"
import "gonum.org/v1/gonum/mat"

// Layer computes act(x*W + b) for a batch x with one sample per row.
type Layer struct {
	In, Out    int
	Activation Activation

	weights *layer.Param
	bias    *layer.Param

	x, z, y *mat.Dense
}

// New creates a layer with He initialization for LeakyReLU and Xavier
// initialization otherwise. Biases start at zero.
func New(name string, in, out int, act Activation, rng *rand.Rand) *Layer {
	l := &Layer{
		In:         in,
		Out:        out,
		Activation: act,
		weights:    layer.NewParam(name+".weight", in, out),
		bias:       layer.NewParam(name+".bias", 1, out),
	}
	data := l.weights.Value.RawMatrix().Data
	if act == LeakyReLU {
		std := math.Sqrt(2.0 / float64(in))
		for i := range data {
			data[i] = rng.NormFloat64() * std
		}
	} else {
		limit := math.Sqrt(6.0 / float64(in+out))
		for i := range data {
			data[i] = rng.Float64()*(2*limit) - limit
		}
	}
	return l
}

// Forward applies the layer to the batch x.
func (l *Layer) Forward(x *mat.Dense) *mat.Dense {
	b := l.bias.Value.RawRowView(0)
	z := new(mat.Dense)
	z.Mul(x, l.weights.Value)
	rows, _ := z.Dims()
	for i := 0; i < rows; i++ {
		row := z.RawRowView(i)
		for j := range row {
			row[j] += b[j]
		}
	}
	y := new(mat.Dense)
	y.Apply(func(_, _ int, v float64) float64 {
		return l.Activation.apply(v)
	}, z)
	l.x, l.z, l.y = x, z, y
	return y
}

// Backward overwrites the parameter gradients and returns the input gradient.
func (l *Layer) Backward(grad *mat.Dense) *mat.Dense {
	if l.x == nil {
		panic("dense: Backward called before Forward")
	}
	dz := new(mat.Dense)
	dz.Apply(func(i, j int, g float64) float64 {
		return g * l.Activation.derivative(l.z.At(i, j), l.y.At(i, j))
	}, grad)

	l.weights.Grad.Mul(l.x.T(), dz)

	db := l.bias.Grad.RawRowView(0)
	for j := range db {
		db[j] = 0
	}
	rows, _ := dz.Dims()
	for i := 0; i < rows; i++ {
		for j, v := range dz.RawRowView(i) {
			db[j] += v
		}
	}

	dx := new(mat.Dense)
	dx.Mul(dz, l.weights.Value.T())
	return dx
}

// Params returns the weight and bias parameters.
func (l *Layer) Params() []*layer.Param {
	return []*layer.Param{l.weights, l.bias}
}

var _ layer.Layer = (*Layer)(nil)
