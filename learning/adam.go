// Package learning implements the optimizer and hyperparameters of the autoencoder trainer.
package learning

import "math"

import "github.com/neurlang/voxelvae/layer"
import "gonum.org/v1/gonum/mat"

// Adam is the Adam optimizer with bias corrected moment estimates.
type Adam struct {
	params []*layer.Param
	m, v   []*mat.Dense
	t      int

	lr, beta1, beta2, eps float64
}

// NewAdam creates an optimizer over params using the rate, betas and epsilon of h.
func NewAdam(params []*layer.Param, h *HyperParameters) *Adam {
	a := &Adam{
		params: params,
		lr:     h.LearningRate,
		beta1:  h.Beta1,
		beta2:  h.Beta2,
		eps:    h.Epsilon,
	}
	for _, p := range params {
		r, c := p.Value.Dims()
		a.m = append(a.m, mat.NewDense(r, c, nil))
		a.v = append(a.v, mat.NewDense(r, c, nil))
	}
	return a
}

// ZeroGrad clears all gradients.
func (a *Adam) ZeroGrad() {
	for _, p := range a.params {
		p.Grad.Zero()
	}
}

// Step applies one update using the current gradients.
func (a *Adam) Step() {
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))
	step := a.lr / c1
	for i, p := range a.params {
		value := p.Value.RawMatrix().Data
		grad := p.Grad.RawMatrix().Data
		m := a.m[i].RawMatrix().Data
		v := a.v[i].RawMatrix().Data
		for j, g := range grad {
			m[j] = a.beta1*m[j] + (1-a.beta1)*g
			v[j] = a.beta2*v[j] + (1-a.beta2)*g*g
			value[j] -= step * m[j] / (math.Sqrt(v[j]/c2) + a.eps)
		}
	}
}

// Steps reports how many updates were applied.
func (a *Adam) Steps() int {
	return a.t
}
