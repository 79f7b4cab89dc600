// Package vae implements a fully connected variational autoencoder over flattened voxel grids.
package vae

import "math"
import "math/rand/v2"
import "strconv"

import "github.com/neurlang/voxelvae/layer"
import "github.com/neurlang/voxelvae/layer/dense"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

// Config fixes the architecture. The decoder mirrors Hidden in reverse order.
type Config struct {
	Resolution int   `json:"resolution"`
	Hidden     []int `json:"hidden"`
	Latent     int   `json:"latent"`
}

// Cells is the number of voxels in one input grid.
func (c Config) Cells() int {
	return c.Resolution * c.Resolution * c.Resolution
}

// Autoencoder encodes a grid into a diagonal Gaussian over latent codes and decodes a
// code back into a grid with values in (-1, 1).
type Autoencoder struct {
	cfg Config
	rng *rand.Rand

	encoder     []*dense.Layer
	mean        *dense.Layer
	logVariance *dense.Layer
	decoder     []*dense.Layer

	// state of the last training forward pass
	eps, std *mat.Dense
	train    bool
}

// New builds an autoencoder whose weights and sampling noise come from rng.
func New(cfg Config, rng *rand.Rand) (*Autoencoder, error) {
	if cfg.Resolution <= 0 || cfg.Latent <= 0 {
		return nil, errors.Errorf("invalid autoencoder config %+v", cfg)
	}
	for _, n := range cfg.Hidden {
		if n <= 0 {
			return nil, errors.Errorf("invalid hidden width in %v", cfg.Hidden)
		}
	}
	a := &Autoencoder{cfg: cfg, rng: rng}

	in := cfg.Cells()
	for i, n := range cfg.Hidden {
		a.encoder = append(a.encoder, dense.New(name("encoder", i), in, n, dense.LeakyReLU, rng))
		in = n
	}
	a.mean = dense.New("mean", in, cfg.Latent, dense.Linear, rng)
	a.logVariance = dense.New("log_variance", in, cfg.Latent, dense.Linear, rng)

	in = cfg.Latent
	for i := len(cfg.Hidden) - 1; i >= 0; i-- {
		n := cfg.Hidden[i]
		a.decoder = append(a.decoder, dense.New(name("decoder", len(a.decoder)), in, n, dense.LeakyReLU, rng))
		in = n
	}
	a.decoder = append(a.decoder, dense.New(name("decoder", len(a.decoder)), in, cfg.Cells(), dense.Tanh, rng))
	return a, nil
}

func name(prefix string, i int) string {
	return prefix + "." + strconv.Itoa(i)
}

// Config returns the architecture.
func (a *Autoencoder) Config() Config {
	return a.cfg
}

// Params lists every learnable parameter, encoder first.
func (a *Autoencoder) Params() (o []*layer.Param) {
	for _, l := range a.encoder {
		o = append(o, l.Params()...)
	}
	o = append(o, a.mean.Params()...)
	o = append(o, a.logVariance.Params()...)
	for _, l := range a.decoder {
		o = append(o, l.Params()...)
	}
	return o
}

// Encode returns the mean and log variance of the latent distribution of x.
func (a *Autoencoder) Encode(x *mat.Dense) (mean, logVariance *mat.Dense) {
	h := x
	for _, l := range a.encoder {
		h = l.Forward(h)
	}
	return a.mean.Forward(h), a.logVariance.Forward(h)
}

// Decode maps latent codes to grids.
func (a *Autoencoder) Decode(z *mat.Dense) *mat.Dense {
	h := z
	for _, l := range a.decoder {
		h = l.Forward(h)
	}
	return h
}

// Forward runs the full autoencoder on x. In training mode the latent code is sampled
// as mean + eps*exp(logVariance/2); otherwise the mean is decoded.
func (a *Autoencoder) Forward(x *mat.Dense, train bool) (output, mean, logVariance *mat.Dense) {
	if _, c := x.Dims(); c != a.cfg.Cells() {
		panic(mat.ErrShape)
	}
	mean, logVariance = a.Encode(x)
	a.train = train
	if !train {
		a.eps, a.std = nil, nil
		return a.Decode(mean), mean, logVariance
	}

	rows, cols := mean.Dims()
	a.eps = mat.NewDense(rows, cols, nil)
	a.std = mat.NewDense(rows, cols, nil)
	z := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		m, lv := mean.RawRowView(i), logVariance.RawRowView(i)
		e, s, zr := a.eps.RawRowView(i), a.std.RawRowView(i), z.RawRowView(i)
		for j := range m {
			e[j] = a.rng.NormFloat64()
			s[j] = math.Exp(0.5 * lv[j])
			zr[j] = m[j] + e[j]*s[j]
		}
	}
	return a.Decode(z), mean, logVariance
}

// Backward propagates the loss gradients with respect to the outputs of the last
// Forward call and fills the gradient of every parameter.
func (a *Autoencoder) Backward(dOutput, dMean, dLogVariance *mat.Dense) {
	g := dOutput
	for i := len(a.decoder) - 1; i >= 0; i-- {
		g = a.decoder[i].Backward(g)
	}

	var dm, dlv mat.Dense
	dm.Add(dMean, g)
	dlv.CloneFrom(dLogVariance)
	if a.train {
		rows, _ := g.Dims()
		for i := 0; i < rows; i++ {
			gz, e, s, out := g.RawRowView(i), a.eps.RawRowView(i), a.std.RawRowView(i), dlv.RawRowView(i)
			for j := range gz {
				out[j] += gz[j] * e[j] * 0.5 * s[j]
			}
		}
	}

	var h mat.Dense
	h.Add(a.mean.Backward(&dm), a.logVariance.Backward(&dlv))
	gh := &h
	for i := len(a.encoder) - 1; i >= 0; i-- {
		gh = a.encoder[i].Backward(gh)
	}
}
