package learning

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// SetLogger sets the output logger file where verbose per-batch training lines are appended.
func (h *HyperParameters) SetLogger(filename string) error {
	outfile, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrap(err, "cannot open batch log")
	}
	h.l = log.New(outfile, "", log.LstdFlags)
	h.closer = outfile
	return nil
}

// Printf writes to the logger set with SetLogger, if any.
func (h *HyperParameters) Printf(format string, v ...interface{}) {
	if h.l != nil {
		h.l.Printf(format, v...)
	}
}

// Close closes the file opened by SetLogger.
func (h *HyperParameters) Close() error {
	if h.closer == nil {
		return nil
	}
	err := h.closer.Close()
	h.l, h.closer = nil, nil
	return err
}

type HyperParameters struct {
	BatchSize int     `json:"batch_size"` // shapes per optimizer step, also the rolling loss window length
	TestSplit float64 `json:"test_split"` // fraction of the dataset held out for evaluation
	Seed      uint64  `json:"seed"`       // seeds the split, the batch order and the weight init

	LearningRate float64 `json:"learning_rate"`
	Beta1        float64 `json:"beta1"`
	Beta2        float64 `json:"beta2"`
	Epsilon      float64 `json:"epsilon"`

	Hidden []int `json:"hidden"` // encoder layer widths; the decoder mirrors them
	Latent int   `json:"latent"`

	ViewerUpdateStep int `json:"viewer_update_step"` // batches between viewer updates and verbose lines
	InceptionSamples int `json:"inception_samples"`  // prior samples decoded for the inception score
	InceptionClasses int `json:"inception_classes"`

	l      *log.Logger
	closer interface{ Close() error }
}

// Defaults returns the hyperparameters of the reference training run.
func Defaults() HyperParameters {
	return HyperParameters{
		BatchSize:        32,
		TestSplit:        0.05,
		LearningRate:     0.00005,
		Beta1:            0.9,
		Beta2:            0.999,
		Epsilon:          1e-8,
		Hidden:           []int{512, 256},
		Latent:           32,
		ViewerUpdateStep: 20,
		InceptionSamples: 256,
		InceptionClasses: 8,
	}
}

// Validate reports the first out of range field.
func (h *HyperParameters) Validate() error {
	switch {
	case h.BatchSize <= 0:
		return errors.Errorf("batch_size must be positive, got %d", h.BatchSize)
	case h.TestSplit < 0 || h.TestSplit >= 1:
		return errors.Errorf("test_split must be in [0, 1), got %v", h.TestSplit)
	case h.LearningRate <= 0:
		return errors.Errorf("learning_rate must be positive, got %v", h.LearningRate)
	case h.Beta1 < 0 || h.Beta1 >= 1 || h.Beta2 < 0 || h.Beta2 >= 1:
		return errors.Errorf("betas must be in [0, 1), got %v, %v", h.Beta1, h.Beta2)
	case h.Epsilon <= 0:
		return errors.Errorf("epsilon must be positive, got %v", h.Epsilon)
	case h.Latent <= 0:
		return errors.Errorf("latent must be positive, got %d", h.Latent)
	case h.ViewerUpdateStep <= 0:
		return errors.Errorf("viewer_update_step must be positive, got %d", h.ViewerUpdateStep)
	case h.InceptionSamples < 0 || h.InceptionClasses < 2:
		return errors.Errorf("inception needs samples >= 0 and classes >= 2, got %d, %d",
			h.InceptionSamples, h.InceptionClasses)
	}
	for _, n := range h.Hidden {
		if n <= 0 {
			return errors.Errorf("hidden widths must be positive, got %v", h.Hidden)
		}
	}
	return nil
}

// LoadHyperParameters reads a JSON file over Defaults. Fields missing from the
// file keep their default values.
func LoadHyperParameters(path string) (HyperParameters, error) {
	h := Defaults()
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return h, errors.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return h, errors.Wrap(err, "failed to stat config file")
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return h, errors.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return h, errors.Wrap(err, "failed to read config file")
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return h, errors.Wrap(err, "failed to parse config JSON")
	}
	if err := h.Validate(); err != nil {
		return h, errors.Wrap(err, "invalid configuration")
	}
	return h, nil
}
