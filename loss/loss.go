// Package loss implements the autoencoder objective: a sign weighted L1 reconstruction
// term, the KL divergence of the latent distribution to the unit Gaussian prior, and
// the voxel sign difference used for reporting.
package loss

import "math"

import "gonum.org/v1/gonum/mat"

// InsideWeight scales reconstruction errors of voxels whose target is negative (inside
// the shape).
const InsideWeight = 32

func checkSameShape(a, b mat.Matrix) (rows, cols int) {
	rows, cols = a.Dims()
	if r, c := b.Dims(); r != rows || c != cols {
		panic(mat.ErrShape)
	}
	return rows, cols
}

// Reconstruction returns mean(|output - target| * w), w being InsideWeight where
// target < 0 and 1 elsewhere.
func Reconstruction(output, target *mat.Dense) float64 {
	rows, cols := checkSameShape(output, target)
	if rows*cols == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < rows; i++ {
		o, t := output.RawRowView(i), target.RawRowView(i)
		for j := range o {
			d := math.Abs(o[j] - t[j])
			if t[j] < 0 {
				d *= InsideWeight
			}
			sum += d
		}
	}
	return sum / float64(rows*cols)
}

// ReconstructionGrad returns the gradient of Reconstruction with respect to output.
func ReconstructionGrad(output, target *mat.Dense) *mat.Dense {
	rows, cols := checkSameShape(output, target)
	n := float64(rows * cols)
	grad := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		o, t, g := output.RawRowView(i), target.RawRowView(i), grad.RawRowView(i)
		for j := range o {
			var s float64
			switch {
			case o[j] > t[j]:
				s = 1
			case o[j] < t[j]:
				s = -1
			}
			if t[j] < 0 {
				s *= InsideWeight
			}
			g[j] = s / n
		}
	}
	return grad
}

// KLD returns -0.5 * sum(1 + logVar - mean^2 - exp(logVar)) / (batch*latent).
func KLD(mean, logVariance *mat.Dense) float64 {
	rows, cols := checkSameShape(mean, logVariance)
	if rows*cols == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < rows; i++ {
		m, lv := mean.RawRowView(i), logVariance.RawRowView(i)
		for j := range m {
			sum += 1 + lv[j] - m[j]*m[j] - math.Exp(lv[j])
		}
	}
	return -0.5 * sum / float64(rows*cols)
}

// KLDGrad returns the gradients of KLD with respect to mean and logVariance.
func KLDGrad(mean, logVariance *mat.Dense) (dMean, dLogVariance *mat.Dense) {
	rows, cols := checkSameShape(mean, logVariance)
	n := float64(rows * cols)
	dMean = mat.NewDense(rows, cols, nil)
	dLogVariance = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		m, lv := mean.RawRowView(i), logVariance.RawRowView(i)
		dm, dlv := dMean.RawRowView(i), dLogVariance.RawRowView(i)
		for j := range m {
			dm[j] = m[j] / n
			dlv[j] = 0.5 * (math.Exp(lv[j]) - 1) / n
		}
	}
	return dMean, dLogVariance
}

// VoxelDifference returns the fraction of voxels where output and target have
// opposite signs.
func VoxelDifference(output, target *mat.Dense) float64 {
	rows, cols := checkSameShape(output, target)
	if rows*cols == 0 {
		return 0
	}
	var wrong int
	for i := 0; i < rows; i++ {
		o, t := output.RawRowView(i), target.RawRowView(i)
		for j := range o {
			if o[j]*t[j] < 0 {
				wrong++
			}
		}
	}
	return float64(wrong) / float64(rows*cols)
}
