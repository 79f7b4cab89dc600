// Package datasets splits voxel datasets into train/test partitions and cuts batches.
package datasets

import "crypto/sha256"
import "encoding/binary"
import "math/rand/v2"
import "sort"

import "github.com/pkg/errors"

// Split shuffles the indices 0..size-1 and cuts the first floor(size*testFraction)
// of them off as the test set. The test set and the training set each receive at
// least one index.
func Split(size int, testFraction float64, rng *rand.Rand) (train, test []int, err error) {
	if size < 2 {
		return nil, nil, errors.Errorf("dataset of %d shapes cannot be split", size)
	}
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, errors.Errorf("test fraction %v out of range [0, 1)", testFraction)
	}
	all := make([]int, size)
	for i := range all {
		all[i] = i
	}
	rng.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })

	n := int(float64(size) * testFraction)
	if n < 1 {
		n = 1
	}
	if n > size-1 {
		n = size - 1
	}
	test = append([]int(nil), all[:n]...)
	train = append([]int(nil), all[n:]...)
	return train, test, nil
}

// Batches shuffles indices in place and cuts them into batches of batchSize.
// The last batch absorbs the remainder, so it holds between batchSize and
// 2*batchSize-1 indices.
func Batches(indices []int, batchSize int, rng *rand.Rand) (o [][]int) {
	if len(indices) == 0 || batchSize <= 0 {
		return nil
	}
	rng.Shuffle(len(indices), func(i, j int) { indices[i], indices[j] = indices[j], indices[i] })

	count := len(indices) / batchSize
	if count <= 1 {
		return [][]int{indices}
	}
	for i := 0; i < count-1; i++ {
		o = append(o, indices[i*batchSize:(i+1)*batchSize])
	}
	return append(o, indices[(count-1)*batchSize:])
}

// Fingerprint returns the sha256 digest of the sorted indices. Two runs with equal
// fingerprints evaluate on the same partition.
func Fingerprint(indices []int) [32]byte {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	h := sha256.New()
	var buf [8]byte
	for _, v := range sorted {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	var o [32]byte
	copy(o[:], h.Sum(nil))
	return o
}
