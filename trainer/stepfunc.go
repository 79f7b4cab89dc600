package trainer

import "github.com/neurlang/voxelvae/datasets/voxels"
import "github.com/neurlang/voxelvae/learning"
import "github.com/neurlang/voxelvae/loss"
import "gonum.org/v1/gonum/mat"

// StepResult describes one optimizer step.
type StepResult struct {
	Reconstruction float64
	KLD            float64
	Output         *mat.Dense // reconstruction of the batch, one grid per row
}

// Loss is the optimized objective.
func (r StepResult) Loss() float64 {
	return r.Reconstruction + r.KLD
}

// NewStepFunc returns a function training net on one batch of data: it clears the
// gradients, runs a sampling forward pass, pushes the reconstruction loss into history,
// backpropagates reconstruction + KLD and applies one optimizer update.
func NewStepFunc(net Model, optimizer *learning.Adam, data *voxels.Dataset, history *Window) func(batch []int) StepResult {
	return func(batch []int) StepResult {
		x := data.Batch(batch)

		optimizer.ZeroGrad()
		output, mean, logVariance := net.Forward(x, true)

		var r = StepResult{
			Reconstruction: loss.Reconstruction(output, x),
			KLD:            loss.KLD(mean, logVariance),
			Output:         output,
		}
		history.Push(r.Reconstruction)

		dMean, dLogVariance := loss.KLDGrad(mean, logVariance)
		net.Backward(loss.ReconstructionGrad(output, x), dMean, dLogVariance)
		optimizer.Step()
		return r
	}
}
