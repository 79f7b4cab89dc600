package voxels

import "crypto/sha256"
import "fmt"
import "os"
import "path/filepath"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func sample(t *testing.T) *Dataset {
	t.Helper()
	vox := make([]float32, 3*8)
	for i := range vox {
		vox[i] = float32(i%5)/2 - 1
	}
	d, err := New(2, vox)
	require.NoError(t, err)
	return d
}

func TestNewValidatesLength(t *testing.T) {
	_, err := New(2, make([]float32, 9))
	assert.Error(t, err)
	_, err = New(0, make([]float32, 8))
	assert.Error(t, err)

	d := sample(t)
	assert.Equal(t, 3, d.Size)
	assert.Equal(t, 8, d.Cells())
}

func TestBatchGathersRows(t *testing.T) {
	d := sample(t)
	b := d.Batch([]int{2, 0})
	r, c := b.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 8, c)
	assert.Equal(t, d.Grid(2), b.RawRowView(0))
	assert.Equal(t, d.Grid(0), b.RawRowView(1))
}

func TestSaveLoad(t *testing.T) {
	d := sample(t)
	for _, name := range []string{"shapes.npy", "shapes.npy.gz"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, d.Save(path))

		got, err := Load(path, "")
		require.NoError(t, err, name)
		assert.Equal(t, d.Size, got.Size)
		assert.Equal(t, d.Resolution, got.Resolution)
		for i := 0; i < d.Size; i++ {
			assert.InDeltaSlice(t, d.Grid(i), got.Grid(i), 1e-6)
		}
	}
}

func TestLoadDigest(t *testing.T) {
	d := sample(t)
	path := filepath.Join(t.TempDir(), "shapes.npy")
	require.NoError(t, d.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	digest := fmt.Sprintf("%x", sha256.Sum256(raw))

	_, err = Load(path, digest)
	assert.NoError(t, err)
	_, err = Load(path, "00"+digest[2:])
	assert.Error(t, err)
}

func TestResolutionOf(t *testing.T) {
	r, err := resolutionOf([]int{10, 4, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, r)

	r, err = resolutionOf([]int{10, 27})
	require.NoError(t, err)
	assert.Equal(t, 3, r)

	_, err = resolutionOf([]int{10, 26})
	assert.Error(t, err)
	_, err = resolutionOf([]int{10, 4, 4, 5})
	assert.Error(t, err)
}
