package trainer

import "context"
import "fmt"
import "io"
import "time"

import "github.com/neurlang/voxelvae/monitoring"
import "github.com/neurlang/voxelvae/trainlog"
import "github.com/neurlang/voxelvae/viewer"
import "github.com/pkg/errors"

// LoopOptions configure NewLoopFunc. The zero value trains forever without a viewer,
// console output or checkpoints.
type LoopOptions struct {
	Viewer           viewer.Viewer
	ViewerUpdateStep int
	Verbose          bool
	Console          io.Writer
	Printf           func(format string, v ...interface{}) // also receives verbose lines

	Checkpoint string // weights file rewritten after every epoch
	MaxEpochs  int    // 0 means no limit
}

// NewLoopFunc returns the epoch loop. Each epoch trains on batches(), saves the
// checkpoint and then evaluates. The loop checks ctx before every batch: once it is
// done the viewer is stopped and the loop returns nil without saving anything.
func NewLoopFunc(net Model, history *Window, batches func() [][]int, step func(batch []int) StepResult,
	evaluate func(epoch int, elapsed time.Duration) (trainlog.Metrics, error), o LoopOptions) func(ctx context.Context) error {

	if o.Viewer == nil {
		o.Viewer = viewer.Nop{}
	}
	if o.ViewerUpdateStep <= 0 {
		o.ViewerUpdateStep = 20
	}
	resolution := net.Config().Resolution

	show := func(r StepResult) {
		if err := o.Viewer.SetVoxels(r.Output.RawRowView(0), resolution); err != nil {
			monitoring.Logf("viewer: %v", err)
		}
	}

	return func(ctx context.Context) error {
		for epoch := 0; o.MaxEpochs == 0 || epoch < o.MaxEpochs; epoch++ {
			start := time.Now()
			for i, batch := range batches() {
				if ctx.Err() != nil {
					if err := o.Viewer.Stop(); err != nil {
						monitoring.Logf("viewer: %v", err)
					}
					return nil
				}
				r := step(batch)

				if i == 0 {
					show(r)
				}
				if (i+1)%o.ViewerUpdateStep == 0 {
					show(r)
					if o.Verbose {
						line := trainlog.FormatBatch(epoch, i, r.Reconstruction, history.Mean(), r.KLD)
						if o.Console != nil {
							fmt.Fprintln(o.Console, line)
						}
						if o.Printf != nil {
							o.Printf("%s", line)
						}
					}
				}
			}
			if o.Checkpoint != "" {
				if err := net.WriteZlibWeightsToFile(o.Checkpoint); err != nil {
					return errors.Wrapf(err, "epoch %d", epoch)
				}
			}
			if _, err := evaluate(epoch, time.Since(start)); err != nil {
				return errors.Wrapf(err, "epoch %d", epoch)
			}
		}
		return o.Viewer.Stop()
	}
}
