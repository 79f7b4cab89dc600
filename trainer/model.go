package trainer

import "github.com/neurlang/voxelvae/net/vae"
import "gonum.org/v1/gonum/mat"

// Model is the autoencoder being trained. *vae.Autoencoder implements it.
type Model interface {
	Forward(x *mat.Dense, train bool) (output, mean, logVariance *mat.Dense)
	Backward(dOutput, dMean, dLogVariance *mat.Dense)
	Decode(z *mat.Dense) *mat.Dense
	Config() vae.Config
	WriteZlibWeightsToFile(name string) error
	ReadZlibWeightsFromFile(name string) error
}

var _ Model = (*vae.Autoencoder)(nil)
