package vae

import "compress/zlib"
import "encoding/json"
import "io"
import "os"
import "path/filepath"

import "github.com/pkg/errors"

type weightsFile struct {
	Config Config        `json:"config"`
	Params []paramRecord `json:"params"`
}

type paramRecord struct {
	Name string    `json:"name"`
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// WriteZlibWeightsToFile writes model weights to a zlib compressed JSON file. The file
// is written next to name first and renamed over it when complete.
func (a *Autoencoder) WriteZlibWeightsToFile(name string) error {
	if dir := filepath.Dir(name); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "cannot create model directory")
		}
	}
	tmp := name + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "cannot create model file")
	}
	err = a.WriteZlibWeights(file)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "write model '%s'", name)
	}
	return errors.Wrap(os.Rename(tmp, name), "cannot replace model file")
}

// WriteZlibWeights writes model weights to a writer
func (a *Autoencoder) WriteZlibWeights(w io.Writer) error {
	f := weightsFile{Config: a.cfg}
	for _, p := range a.Params() {
		r, c := p.Value.Dims()
		f.Params = append(f.Params, paramRecord{
			Name: p.Name,
			Rows: r,
			Cols: c,
			Data: p.Value.RawMatrix().Data,
		})
	}
	zw := zlib.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(&f); err != nil {
		return err
	}
	return zw.Close()
}

// ReadZlibWeightsFromFile reads model weights from a zlib compressed JSON file
func (a *Autoencoder) ReadZlibWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return errors.Wrap(err, "cannot open model file")
	}
	defer file.Close()
	return errors.Wrapf(a.ReadZlibWeights(file), "read model '%s'", name)
}

// ReadZlibWeights reads model weights from a reader. The stored architecture must
// match the receiver's.
func (a *Autoencoder) ReadZlibWeights(r io.Reader) error {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return err
	}
	defer zr.Close()
	var f weightsFile
	if err := json.NewDecoder(zr).Decode(&f); err != nil {
		return err
	}
	if !sameConfig(f.Config, a.cfg) {
		return errors.Errorf("stored architecture %+v does not match %+v", f.Config, a.cfg)
	}
	params := a.Params()
	if len(f.Params) != len(params) {
		return errors.Errorf("stored %d parameters, model has %d", len(f.Params), len(params))
	}
	for i, p := range params {
		rec := f.Params[i]
		r, c := p.Value.Dims()
		if rec.Name != p.Name || rec.Rows != r || rec.Cols != c || len(rec.Data) != r*c {
			return errors.Errorf("parameter %d: stored %s %dx%d, model has %s %dx%d",
				i, rec.Name, rec.Rows, rec.Cols, p.Name, r, c)
		}
	}
	for i, p := range params {
		copy(p.Value.RawMatrix().Data, f.Params[i].Data)
	}
	return nil
}

func sameConfig(a, b Config) bool {
	if a.Resolution != b.Resolution || a.Latent != b.Latent || len(a.Hidden) != len(b.Hidden) {
		return false
	}
	for i := range a.Hidden {
		if a.Hidden[i] != b.Hidden[i] {
			return false
		}
	}
	return true
}
