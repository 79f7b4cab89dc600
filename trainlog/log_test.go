package trainlog

import "os"
import "path/filepath"
import "strings"
import "testing"

import "github.com/google/go-cmp/cmp"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func TestLineFormat(t *testing.T) {
	m := Metrics{Epoch: 3, Seconds: 12.34, Reconstruction: 0.5, KLD: 0.0123456789, VoxelDiff: 0.25, Inception: 1.5}
	assert.Equal(t, "3 12.3 0.500000 0.012346 0.250000 1.500000\n", m.Line())
}

func TestFormatEpoch(t *testing.T) {
	m := Metrics{Epoch: 0, Seconds: 1.3, Reconstruction: 0.5, KLD: 0.25, VoxelDiff: 0.125, Inception: 2}
	assert.Equal(t,
		"Epoch 0 (1.3s): Reconstruction loss: 0.5000, Voxel diff: 0.1250, KLD loss: 0.250000, "+
			"training loss: 0.750000, inception score: 2.000000",
		FormatEpoch(m, 0.75))
}

func TestFormatBatch(t *testing.T) {
	assert.Equal(t, "epoch 1, batch 19, reconstruction loss: 0.1000 (average: 0.2000), KLD loss: 0.0300",
		FormatBatch(1, 19, 0.1, 0.2, 0.03))
}

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "training.csv")
	l, err := Open(path, false)
	require.NoError(t, err)

	want := []Metrics{
		{Epoch: 0, Seconds: 1.5, Reconstruction: 0.75, KLD: 0.125, VoxelDiff: 0.5, Inception: 1.25},
		{Epoch: 1, Seconds: 2.5, Reconstruction: 0.5, KLD: 0.0625, VoxelDiff: 0.25, Inception: 1.5},
	}
	for _, m := range want {
		require.NoError(t, l.Write(m))
	}
	require.NoError(t, l.Close())

	got, err := ReadFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadFile mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAppendAndTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "training.csv")
	write := func(appendMode bool, epoch int) {
		l, err := Open(path, appendMode)
		require.NoError(t, err)
		require.NoError(t, l.Write(Metrics{Epoch: epoch}))
		require.NoError(t, l.Close())
	}
	lines := func() int {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return strings.Count(string(data), "\n")
	}

	write(false, 0)
	write(true, 1)
	assert.Equal(t, 2, lines())
	write(false, 0)
	assert.Equal(t, 1, lines())
}

func TestReadAllMalformed(t *testing.T) {
	_, err := ReadAll(strings.NewReader("1 2.0 x 0 0 0\n"))
	assert.Error(t, err)
	_, err = ReadAll(strings.NewReader("1 2.0 0\n"))
	assert.Error(t, err)
}
