package trainer

import "fmt"
import "io"
import "math/rand/v2"
import "time"

import "github.com/google/uuid"
import "github.com/neurlang/voxelvae/datasets/voxels"
import "github.com/neurlang/voxelvae/inference"
import "github.com/neurlang/voxelvae/loss"
import "github.com/neurlang/voxelvae/trainlog"
import "github.com/neurlang/voxelvae/voxel"
import "github.com/pkg/errors"

// Reporting selects where evaluation results go. Nil fields are skipped.
type Reporting struct {
	Console   io.Writer
	Log       *trainlog.Log
	Store     *trainlog.Store
	Run       uuid.UUID
	ShowSlice bool // print the middle slice of the first test reconstruction
}

// NewEvaluateFunc returns a function evaluating net on the test indices of data in
// eval mode. It computes reconstruction loss, KLD, voxel difference and the inception
// score of samples shapes decoded from the prior, then reports them.
func NewEvaluateFunc(net Model, data *voxels.Dataset, test []int, history *Window,
	classifier inference.Classifier, samples int, rng *rand.Rand, report Reporting) func(epoch int, elapsed time.Duration) (trainlog.Metrics, error) {

	x := data.Batch(test)

	return func(epoch int, elapsed time.Duration) (trainlog.Metrics, error) {
		output, mean, logVariance := net.Forward(x, false)

		m := trainlog.Metrics{
			Epoch:          epoch,
			Seconds:        elapsed.Seconds(),
			Reconstruction: loss.Reconstruction(output, x),
			KLD:            loss.KLD(mean, logVariance),
			VoxelDiff:      loss.VoxelDifference(output, x),
		}
		if classifier != nil {
			m.Inception = inference.InceptionScore(net, classifier, samples, rng)
		}

		if report.Console != nil {
			if report.ShowSlice {
				fmt.Fprintln(report.Console, voxel.TextSlice(output.RawRowView(0), data.Resolution))
			}
			fmt.Fprintln(report.Console, trainlog.FormatEpoch(m, history.Mean()))
		}
		if report.Log != nil {
			if err := report.Log.Write(m); err != nil {
				return m, err
			}
		}
		if report.Store != nil {
			if err := report.Store.RecordEpoch(report.Run, m); err != nil {
				return m, errors.Wrapf(err, "epoch %d", epoch)
			}
		}
		return m, nil
	}
}
