// Package inference decodes shapes from the latent prior and scores their variety.
package inference

import "math"
import "math/rand/v2"

import "github.com/neurlang/voxelvae/net/vae"
import "github.com/neurlang/voxelvae/parallel"
import "gonum.org/v1/gonum/floats"
import "gonum.org/v1/gonum/mat"
import "gonum.org/v1/gonum/stat"

// Model is a trained decoder.
type Model interface {
	Decode(z *mat.Dense) *mat.Dense
	Config() vae.Config
}

// Sample decodes n latent codes drawn from the unit Gaussian prior.
func Sample(m Model, n int, rng *rand.Rand) *mat.Dense {
	z := mat.NewDense(n, m.Config().Latent, nil)
	z.Apply(func(_, _ int, _ float64) float64 { return rng.NormFloat64() }, z)
	return m.Decode(z)
}

// Classifier assigns class probabilities to shapes, one shape per row.
type Classifier interface {
	Classify(shapes *mat.Dense) *mat.Dense
}

// OccupancyClassifier softly bins shapes by the fraction of voxels inside them.
// It needs no training, which makes the score comparable across runs.
type OccupancyClassifier struct {
	Classes int
}

// Classify returns a len(shapes) x Classes matrix of probabilities.
func (c OccupancyClassifier) Classify(shapes *mat.Dense) *mat.Dense {
	rows, _ := shapes.Dims()
	k := c.Classes
	probs := mat.NewDense(rows, k, nil)
	parallel.ForEach(rows, parallel.Threads(), func(i int) {
		row := shapes.RawRowView(i)
		var inside int
		for _, v := range row {
			if v < 0 {
				inside++
			}
		}
		frac := float64(inside) / float64(len(row))
		p := probs.RawRowView(i)
		for j := range p {
			d := float64(k) * (frac - (float64(j)+0.5)/float64(k))
			p[j] = math.Exp(-d * d)
		}
		floats.Scale(1/floats.Sum(p), p)
	})
	return probs
}

// InceptionScore returns exp(mean_i KL(p(y|x_i) || p(y))) over n decoded prior samples.
// It is 1 when every sample gets the same class distribution and grows up to the number
// of classes when samples are confidently spread over all classes.
func InceptionScore(m Model, c Classifier, n int, rng *rand.Rand) float64 {
	if n <= 0 {
		return 0
	}
	probs := c.Classify(Sample(m, n, rng))
	rows, cols := probs.Dims()
	marginal := make([]float64, cols)
	for i := 0; i < rows; i++ {
		floats.Add(marginal, probs.RawRowView(i))
	}
	floats.Scale(1/float64(rows), marginal)

	kl := make([]float64, rows)
	parallel.ForEach(rows, parallel.Threads(), func(i int) {
		kl[i] = stat.KullbackLeibler(probs.RawRowView(i), marginal)
	})
	return math.Exp(stat.Mean(kl, nil))
}
