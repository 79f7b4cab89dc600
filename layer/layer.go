// Package layer defines the trainable layer interface shared by the network packages.
package layer

import "gonum.org/v1/gonum/mat"

// Param is one learnable tensor together with the gradient of the loss with respect to it.
type Param struct {
	Name  string
	Value *mat.Dense
	Grad  *mat.Dense
}

// NewParam allocates a zero parameter and its zero gradient.
func NewParam(name string, rows, cols int) *Param {
	return &Param{
		Name:  name,
		Value: mat.NewDense(rows, cols, nil),
		Grad:  mat.NewDense(rows, cols, nil),
	}
}

// Layer is a differentiable batch transform. Rows of the matrices are samples.
type Layer interface {

	// Forward maps a batch of inputs to a batch of outputs and remembers what
	// Backward needs.
	Forward(x *mat.Dense) *mat.Dense

	// Backward receives the loss gradient with respect to the last Forward output,
	// stores parameter gradients and returns the gradient with respect to its input.
	Backward(grad *mat.Dense) *mat.Dense

	// Params lists the learnable parameters.
	Params() []*Param
}
