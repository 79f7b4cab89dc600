// Package viewer shows the autoencoder's current reconstruction while it trains.
package viewer

import "fmt"
import "os"
import "path/filepath"
import "sync"

import "github.com/pkg/errors"
import "gonum.org/v1/plot"
import "gonum.org/v1/plot/palette"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/vg"

// Viewer displays voxel grids.
type Viewer interface {

	// SetVoxels replaces the displayed grid.
	SetVoxels(grid []float64, resolution int) error

	// Stop closes the viewer. Later SetVoxels calls fail.
	Stop() error
}

// Nop discards everything. It stands in for the viewer when the GUI is disabled.
type Nop struct{}

func (Nop) SetVoxels([]float64, int) error { return nil }
func (Nop) Stop() error                    { return nil }

// ErrStopped is returned by SetVoxels after Stop.
var ErrStopped = errors.New("viewer stopped")

// PNG renders the middle slice of each grid as a heatmap image, replacing the file on
// every update so an image viewer with auto reload shows training progress.
type PNG struct {
	Path string
	Size vg.Length

	mu      sync.Mutex
	stopped bool
	updates int
}

// NewPNG creates the output directory and returns a viewer writing to path.
func NewPNG(path string) (*PNG, error) {
	if filepath.Ext(path) != ".png" {
		return nil, errors.Errorf("viewer output must be a .png file, got %q", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create viewer dir")
	}
	return &PNG{Path: path, Size: 4 * vg.Inch}, nil
}

// SetVoxels renders grid and atomically replaces the image file.
func (v *PNG) SetVoxels(grid []float64, resolution int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stopped {
		return ErrStopped
	}
	if len(grid) < resolution*resolution*resolution {
		return errors.Errorf("grid of %d voxels is smaller than %d^3", len(grid), resolution)
	}
	v.updates++

	p := plot.New()
	p.Title.Text = fmt.Sprintf("reconstruction #%d, slice x=%d", v.updates, resolution/2)
	p.X.Label.Text = "z"
	p.Y.Label.Text = "y"
	hm := plotter.NewHeatMap(Slice{Grid: grid, Resolution: resolution}, palette.Heat(16, 1))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)

	dir, base := filepath.Split(v.Path)
	tmp := filepath.Join(dir, ".tmp-"+base)
	if err := p.Save(v.Size, v.Size, tmp); err != nil {
		return errors.Wrap(err, "failed to save viewer image")
	}
	return errors.Wrap(os.Rename(tmp, v.Path), "failed to replace viewer image")
}

// Updates reports how many grids have been rendered.
func (v *PNG) Updates() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.updates
}

// Stop makes further updates fail. The last image stays on disk.
func (v *PNG) Stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stopped = true
	return nil
}

// Slice exposes the x = Resolution/2 plane of an x-major grid as plotter.GridXYZ,
// columns along z and rows along y.
type Slice struct {
	Grid       []float64
	Resolution int
}

func (s Slice) Dims() (c, r int)   { return s.Resolution, s.Resolution }
func (s Slice) X(c int) float64    { return float64(c) }
func (s Slice) Y(r int) float64    { return float64(r) }
func (s Slice) Z(c, r int) float64 {
	x := s.Resolution / 2
	return s.Grid[(x*s.Resolution+r)*s.Resolution+c]
}

var _ Viewer = (*PNG)(nil)
var _ Viewer = Nop{}
var _ plotter.GridXYZ = Slice{}
