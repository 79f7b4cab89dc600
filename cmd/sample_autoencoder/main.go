package main

import "flag"
import "fmt"
import "io"
import "math/rand/v2"
import "os"

import "github.com/neurlang/voxelvae/inference"
import "github.com/neurlang/voxelvae/learning"
import "github.com/neurlang/voxelvae/monitoring"
import "github.com/neurlang/voxelvae/net/vae"
import "github.com/neurlang/voxelvae/voxel"

func main() {
	model := flag.String("model", "models/autoencoder.json.zlib", "model checkpoint .json.zlib file")
	config := flag.String("config", "", "hyperparameters .json file the model was trained with")
	resolution := flag.Int("resolution", 16, "voxel resolution the model was trained on")
	count := flag.Int("n", 4, "samples to print")
	seed := flag.Uint64("seed", 0, "sampling seed")
	flag.Parse()

	var h = learning.Defaults()
	if *config != "" {
		var err error
		if h, err = learning.LoadHyperParameters(*config); err != nil {
			monitoring.Logf("%v", err)
			os.Exit(1)
		}
	}
	net, err := vae.New(vae.Config{Resolution: *resolution, Hidden: h.Hidden, Latent: h.Latent}, rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		monitoring.Logf("%v", err)
		os.Exit(1)
	}
	if err := net.ReadZlibWeightsFromFile(*model); err != nil {
		monitoring.Logf("%v", err)
		os.Exit(1)
	}
	printSamples(os.Stdout, net, *count, h, rand.New(rand.NewPCG(*seed, 1)))
}

func printSamples(w io.Writer, m inference.Model, n int, h learning.HyperParameters, rng *rand.Rand) {
	resolution := m.Config().Resolution
	samples := inference.Sample(m, n, rng)
	for i := 0; i < n; i++ {
		fmt.Fprintf(w, "sample %d\n%s\n", i, voxel.TextSlice(samples.RawRowView(i), resolution))
	}
	score := inference.InceptionScore(m, inference.OccupancyClassifier{Classes: h.InceptionClasses}, h.InceptionSamples, rng)
	fmt.Fprintf(w, "inception score: %4f\n", score)
}
