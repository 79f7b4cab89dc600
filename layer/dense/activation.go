package dense

import "math"

import "github.com/pkg/errors"

// Activation is an elementwise nonlinearity applied after the affine transform.
type Activation byte

const (
	Linear Activation = iota
	LeakyReLU
	Tanh
	Sigmoid
)

const leak = 0.01

var activationNames = map[Activation]string{
	Linear:    "linear",
	LeakyReLU: "leakyrelu",
	Tanh:      "tanh",
	Sigmoid:   "sigmoid",
}

func (a Activation) String() string {
	return activationNames[a]
}

// ParseActivation looks an activation up by name.
func ParseActivation(name string) (Activation, error) {
	for k, v := range activationNames {
		if v == name {
			return k, nil
		}
	}
	return Linear, errors.Errorf("unknown activation %q", name)
}

func (a Activation) apply(z float64) float64 {
	switch a {
	case LeakyReLU:
		if z > 0 {
			return z
		}
		return leak * z
	case Tanh:
		return math.Tanh(z)
	case Sigmoid:
		return 1 / (1 + math.Exp(-z))
	}
	return z
}

// derivative of the activation at z, given its output y = apply(z).
func (a Activation) derivative(z, y float64) float64 {
	switch a {
	case LeakyReLU:
		if z > 0 {
			return 1
		}
		return leak
	case Tanh:
		return 1 - y*y
	case Sigmoid:
		return y * (1 - y)
	}
	return 1
}
