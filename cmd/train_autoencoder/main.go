package main

import "context"
import "flag"
import "fmt"
import "math/rand/v2"
import "os"
import "os/signal"
import "syscall"

import "github.com/neurlang/voxelvae/datasets"
import "github.com/neurlang/voxelvae/datasets/shapes"
import "github.com/neurlang/voxelvae/datasets/voxels"
import "github.com/neurlang/voxelvae/inference"
import "github.com/neurlang/voxelvae/learning"
import "github.com/neurlang/voxelvae/learning/cu"
import "github.com/neurlang/voxelvae/monitoring"
import "github.com/neurlang/voxelvae/net/vae"
import "github.com/neurlang/voxelvae/parallel"
import "github.com/neurlang/voxelvae/trainer"
import "github.com/neurlang/voxelvae/trainlog"
import "github.com/neurlang/voxelvae/viewer"
import "github.com/pkg/errors"

// modeWords can be passed without a dash.
var modeWords = map[string]bool{"continue": true, "nogui": true, "verbose": true, "show_slice": true, "pgo": true}

func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if modeWords[arg] {
			arg = "-" + arg
		}
		out[i] = arg
	}
	return out
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		monitoring.Logf("%v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("train_autoencoder", flag.ExitOnError)
	resume := fs.Bool("continue", false, "load the checkpoint and append to the training log")
	nogui := fs.Bool("nogui", false, "disable the reconstruction viewer")
	verbose := fs.Bool("verbose", false, "print a line every viewer update step")
	showSlice := fs.Bool("show_slice", false, "print a text slice of a test reconstruction after each epoch")
	dataset := fs.String("dataset", "", "voxel dataset .npy or .npy.gz file; empty generates primitive shapes")
	datasetSha := fs.String("datasetsha", "", "expected sha256 hex digest of the dataset file")
	generated := fs.Int("shapes", 2000, "number of generated shapes when -dataset is empty")
	resolution := fs.Int("resolution", 16, "voxel resolution of generated shapes")
	model := fs.String("model", "models/autoencoder.json.zlib", "model checkpoint .json.zlib file")
	logPath := fs.String("log", "plots/autoencoder_training.csv", "per epoch training log")
	batchLog := fs.String("batchlog", "", "file receiving the verbose batch lines")
	config := fs.String("config", "", "hyperparameters .json file")
	viewerPath := fs.String("viewer", "plots/reconstruction.png", "image the viewer keeps replacing")
	metricsDB := fs.String("metricsdb", "", "sqlite database recording every run")
	epochs := fs.Int("epochs", 0, "stop after this many epochs; 0 trains until interrupted")
	pgo := fs.Bool("pgo", false, "write a CPU profile to default.pgo")
	fs.Parse(normalizeArgs(args))

	if *pgo {
		stop, err := startProfile("default.pgo")
		if err != nil {
			return err
		}
		defer stop()
	}

	var h = learning.Defaults()
	if *config != "" {
		var err error
		if h, err = learning.LoadHyperParameters(*config); err != nil {
			return err
		}
	}
	if *batchLog != "" {
		if err := h.SetLogger(*batchLog); err != nil {
			return err
		}
		defer h.Close()
	}
	monitoring.Logf("cpu: %s, device: %s", parallel.Describe(), cu.Describe())

	var data *voxels.Dataset
	var err error
	if *dataset != "" {
		data, err = voxels.Load(*dataset, *datasetSha)
	} else {
		monitoring.Logf("generating %d shapes at resolution %d", *generated, *resolution)
		data, err = shapes.Generate(*generated, *resolution, h.Seed)
	}
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(h.Seed, h.Seed))
	train, test, err := datasets.Split(data.Size, h.TestSplit, rng)
	if err != nil {
		return err
	}
	monitoring.Logf("%d training shapes, %d test shapes (test set %x)", len(train), len(test), datasets.Fingerprint(test))

	net, err := vae.New(vae.Config{Resolution: data.Resolution, Hidden: h.Hidden, Latent: h.Latent}, rng)
	if err != nil {
		return err
	}
	if err := trainer.Resume(net, resume, model); err != nil {
		return err
	}
	optimizer := learning.NewAdam(net.Params(), &h)

	log, err := trainlog.Open(*logPath, *resume)
	if err != nil {
		return err
	}
	defer log.Close()

	report := trainer.Reporting{Console: os.Stdout, Log: log, ShowSlice: *showSlice}
	if *metricsDB != "" {
		store, err := trainlog.OpenStore(*metricsDB)
		if err != nil {
			return err
		}
		defer store.Close()
		if report.Run, err = store.StartRun(h); err != nil {
			return err
		}
		report.Store = store
		monitoring.Logf("run %s", report.Run)
	}

	var view viewer.Viewer = viewer.Nop{}
	if !*nogui {
		png, err := viewer.NewPNG(*viewerPath)
		if err != nil {
			return err
		}
		monitoring.Logf("viewer writes %s", png.Path)
		view = png
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	history := trainer.NewWindow(h.BatchSize)
	step := trainer.NewStepFunc(net, optimizer, data, history)
	evaluate := trainer.NewEvaluateFunc(net, data, test, history,
		inference.OccupancyClassifier{Classes: h.InceptionClasses}, h.InceptionSamples,
		rand.New(rand.NewPCG(h.Seed, 1)), report)
	batches := func() [][]int {
		return datasets.Batches(train, h.BatchSize, rng)
	}

	loop := trainer.NewLoopFunc(net, history, batches, step, evaluate, trainer.LoopOptions{
		Viewer:           view,
		ViewerUpdateStep: h.ViewerUpdateStep,
		Verbose:          *verbose,
		Console:          os.Stdout,
		Printf:           h.Printf,
		Checkpoint:       *model,
		MaxEpochs:        *epochs,
	})
	if err := loop(ctx); err != nil {
		return errors.Wrap(err, "training failed")
	}
	if ctx.Err() != nil {
		fmt.Println("interrupted")
	}
	return nil
}
