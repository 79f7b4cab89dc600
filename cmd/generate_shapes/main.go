package main

import "crypto/sha256"
import "encoding/hex"
import "flag"
import "os"

import "github.com/neurlang/voxelvae/datasets/shapes"
import "github.com/neurlang/voxelvae/monitoring"
import "github.com/pkg/errors"

func main() {
	out := flag.String("out", "data/shapes.npy.gz", "output .npy or .npy.gz file")
	count := flag.Int("n", 2000, "number of shapes")
	resolution := flag.Int("resolution", 16, "voxels along each axis")
	seed := flag.Uint64("seed", 0, "generator seed")
	flag.Parse()

	digest, err := generate(*out, *count, *resolution, *seed)
	if err != nil {
		monitoring.Logf("%v", err)
		os.Exit(1)
	}
	monitoring.Logf("wrote %d shapes to %s, sha256 %s", *count, *out, digest)
}

func generate(path string, n, resolution int, seed uint64) (string, error) {
	data, err := shapes.Generate(n, resolution, seed)
	if err != nil {
		return "", err
	}
	if err := data.Save(path); err != nil {
		return "", err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash output")
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
