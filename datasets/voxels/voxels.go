// Package voxels implements the voxel shape dataset: a set of cubic signed distance
// grids kept in one contiguous float32 slice.
package voxels

import "bytes"
import "compress/gzip"
import "crypto/sha256"
import "fmt"
import "io"
import "os"
import "path/filepath"
import "strings"

import "github.com/pkg/errors"
import "github.com/sbinet/npyio"
import "gonum.org/v1/gonum/mat"

// Dataset holds Size grids of Resolution^3 voxels each. Grid i occupies
// voxels[i*Cells() : (i+1)*Cells()] in x-major order.
type Dataset struct {
	Size       int
	Resolution int

	voxels []float32
}

// New wraps voxels as a dataset of grids with the given resolution.
func New(resolution int, voxels []float32) (*Dataset, error) {
	if resolution <= 0 {
		return nil, errors.Errorf("invalid resolution %d", resolution)
	}
	cells := resolution * resolution * resolution
	if len(voxels) == 0 || len(voxels)%cells != 0 {
		return nil, errors.Errorf("%d voxels do not form whole %d^3 grids", len(voxels), resolution)
	}
	return &Dataset{
		Size:       len(voxels) / cells,
		Resolution: resolution,
		voxels:     voxels,
	}, nil
}

// Cells returns the number of voxels in one grid.
func (d *Dataset) Cells() int {
	return d.Resolution * d.Resolution * d.Resolution
}

// Grid copies the i-th grid out as float64 values.
func (d *Dataset) Grid(i int) []float64 {
	cells := d.Cells()
	o := make([]float64, cells)
	for j, v := range d.voxels[i*cells : (i+1)*cells] {
		o[j] = float64(v)
	}
	return o
}

// Batch gathers the grids at indices into a len(indices) x Cells() matrix.
func (d *Dataset) Batch(indices []int) *mat.Dense {
	cells := d.Cells()
	data := make([]float64, len(indices)*cells)
	for row, idx := range indices {
		src := d.voxels[idx*cells : (idx+1)*cells]
		dst := data[row*cells : (row+1)*cells]
		for j, v := range src {
			dst[j] = float64(v)
		}
	}
	return mat.NewDense(len(indices), cells, data)
}

// Load reads an NPY array shaped [N, R, R, R] or [N, R^3]. A ".gz" suffix means the
// file is gzip compressed. When digest is not empty, the sha256 of the file on disk
// must match it.
func Load(path string, digest string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read voxel dataset")
	}
	if digest != "" {
		if sum := fmt.Sprintf("%x", sha256.Sum256(raw)); sum != strings.ToLower(digest) {
			return nil, errors.Errorf("file hash for file '%s' is incorrect: %s", path, sum)
		}
	}
	var r io.Reader = bytes.NewReader(raw)
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "gzip file '%s'", path)
		}
		defer gr.Close()
		r = gr
	}
	d, err := Read(r)
	if err != nil {
		return nil, errors.Wrapf(err, "voxel dataset '%s'", path)
	}
	return d, nil
}

// Read decodes an NPY stream into a dataset.
func Read(r io.Reader) (*Dataset, error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "npy header")
	}
	shape := npy.Header.Descr.Shape
	resolution, err := resolutionOf(shape)
	if err != nil {
		return nil, err
	}
	if npy.Header.Descr.Fortran {
		return nil, errors.New("fortran ordered arrays are not supported")
	}

	var voxels []float32
	switch strings.TrimLeft(npy.Header.Descr.Type, "<|=") {
	case "f4":
		if err := npy.Read(&voxels); err != nil {
			return nil, errors.Wrap(err, "npy float32 data")
		}
	case "f8":
		var wide []float64
		if err := npy.Read(&wide); err != nil {
			return nil, errors.Wrap(err, "npy float64 data")
		}
		voxels = make([]float32, len(wide))
		for i, v := range wide {
			voxels[i] = float32(v)
		}
	default:
		return nil, errors.Errorf("unsupported npy dtype %q", npy.Header.Descr.Type)
	}
	return New(resolution, voxels)
}

// Save writes the dataset as an NPY array shaped [N, R^3].
func (d *Dataset) Save(path string) error {
	cells := d.Cells()
	data := make([]float64, len(d.voxels))
	for i, v := range d.voxels {
		data[i] = float64(v)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "cannot create dataset dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create voxel dataset")
	}
	var w io.Writer = f
	var gw *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gw = gzip.NewWriter(f)
		w = gw
	}
	err = npyio.Write(w, mat.NewDense(d.Size, cells, data))
	if gw != nil {
		if cerr := gw.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return errors.Wrapf(err, "write voxel dataset '%s'", path)
}

func resolutionOf(shape []int) (int, error) {
	switch len(shape) {
	case 4:
		if shape[1] != shape[2] || shape[2] != shape[3] {
			return 0, errors.Errorf("grids of shape %v are not cubic", shape[1:])
		}
		return shape[1], nil
	case 2:
		r := cubeRoot(shape[1])
		if r == 0 {
			return 0, errors.Errorf("%d voxels per row is not a cube", shape[1])
		}
		return r, nil
	}
	return 0, errors.Errorf("unsupported npy shape %v", shape)
}

func cubeRoot(n int) int {
	for r := 1; r*r*r <= n; r++ {
		if r*r*r == n {
			return r
		}
	}
	return 0
}
