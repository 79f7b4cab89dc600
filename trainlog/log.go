package trainlog

import "bufio"
import "encoding/csv"
import "fmt"
import "io"
import "os"
import "path/filepath"
import "strconv"
import "sync"

import "github.com/pkg/errors"

// Metrics are the evaluation results of one epoch.
type Metrics struct {
	Epoch          int
	Seconds        float64
	Reconstruction float64
	KLD            float64
	VoxelDiff      float64
	Inception      float64
}

// Line formats m the way it is stored in the log file, including the newline.
func (m Metrics) Line() string {
	return fmt.Sprintf("%d %.1f %.6f %.6f %.6f %.6f\n",
		m.Epoch, m.Seconds, m.Reconstruction, m.KLD, m.VoxelDiff, m.Inception)
}

// FormatEpoch is the console summary printed after evaluating an epoch.
func FormatEpoch(m Metrics, trainingLoss float64) string {
	return fmt.Sprintf("Epoch %d (%.1fs): Reconstruction loss: %.4f, Voxel diff: %.4f, "+
		"KLD loss: %4f, training loss: %4f, inception score: %4f",
		m.Epoch, m.Seconds, m.Reconstruction, m.VoxelDiff, m.KLD, trainingLoss, m.Inception)
}

// FormatBatch is the verbose per batch console line.
func FormatBatch(epoch, batch int, reconstruction, average, kld float64) string {
	return fmt.Sprintf("epoch %d, batch %d, reconstruction loss: %.4f (average: %.4f), KLD loss: %.4f",
		epoch, batch, reconstruction, average, kld)
}

// Log is an open metrics file.
type Log struct {
	mu   sync.Mutex
	file *os.File
	w    *bufio.Writer
}

// Open creates the log file and its directory. The file is truncated unless appendMode is set.
func Open(path string, appendMode bool) (*Log, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "failed to create log dir")
		}
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log %s", path)
	}
	return &Log{file: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one line and flushes it to the file.
func (l *Log) Write(m Metrics) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.WriteString(m.Line()); err != nil {
		return errors.Wrap(err, "failed to write log line")
	}
	return errors.Wrap(l.w.Flush(), "failed to flush log")
}

// Close flushes and closes the file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.w.Flush(); err != nil {
		l.file.Close()
		return errors.Wrap(err, "failed to flush log")
	}
	return l.file.Close()
}

// ReadAll parses every line written by Log.
func ReadAll(r io.Reader) ([]Metrics, error) {
	cr := csv.NewReader(r)
	cr.Comma = ' '
	cr.FieldsPerRecord = 6
	cr.ReuseRecord = true

	var out []Metrics
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "malformed log")
		}
		var m Metrics
		if m.Epoch, err = strconv.Atoi(rec[0]); err != nil {
			return nil, errors.Wrapf(err, "line %d: epoch", len(out)+1)
		}
		fields := []*float64{&m.Seconds, &m.Reconstruction, &m.KLD, &m.VoxelDiff, &m.Inception}
		for i, dst := range fields {
			if *dst, err = strconv.ParseFloat(rec[i+1], 64); err != nil {
				return nil, errors.Wrapf(err, "line %d: column %d", len(out)+1, i+2)
			}
		}
		out = append(out, m)
	}
}

// ReadFile is ReadAll over a file.
func ReadFile(path string) ([]Metrics, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log")
	}
	defer f.Close()
	return ReadAll(f)
}
