package main

import "flag"
import "os"
import "path/filepath"
import "strings"

import "github.com/neurlang/voxelvae/monitoring"
import "github.com/neurlang/voxelvae/trainlog"
import "github.com/pkg/errors"
import "gonum.org/v1/plot"
import "gonum.org/v1/plot/plotter"
import "gonum.org/v1/plot/plotutil"
import "gonum.org/v1/plot/vg"

type series struct {
	name  string
	value func(trainlog.Metrics) float64
}

var metrics = []series{
	{"reconstruction", func(m trainlog.Metrics) float64 { return m.Reconstruction }},
	{"kld", func(m trainlog.Metrics) float64 { return m.KLD }},
	{"voxel_diff", func(m trainlog.Metrics) float64 { return m.VoxelDiff }},
	{"inception", func(m trainlog.Metrics) float64 { return m.Inception }},
}

func main() {
	logPath := flag.String("log", "plots/autoencoder_training.csv", "training log to plot")
	outDir := flag.String("out", "", "output directory, defaults to the directory of the log")
	flag.Parse()

	files, err := plotLog(*logPath, *outDir)
	if err != nil {
		monitoring.Logf("%v", err)
		os.Exit(1)
	}
	for _, f := range files {
		monitoring.Logf("wrote %s", f)
	}
}

func plotLog(logPath, outDir string) ([]string, error) {
	rows, err := trainlog.ReadFile(logPath)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.Errorf("%s has no epochs", logPath)
	}
	if outDir == "" {
		outDir = filepath.Dir(logPath)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create output dir")
	}
	base := strings.TrimSuffix(filepath.Base(logPath), filepath.Ext(logPath))

	var files []string
	for i, s := range metrics {
		// a continued run restarts the epoch count, so points are numbered by line
		pts := make(plotter.XYs, len(rows))
		for j, m := range rows {
			pts[j] = plotter.XY{X: float64(j), Y: s.value(m)}
		}

		p := plot.New()
		p.Title.Text = s.name
		p.X.Label.Text = "epoch"
		p.Y.Label.Text = s.name

		line, err := plotter.NewLine(pts)
		if err != nil {
			return files, err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(plotter.NewGrid(), line)

		file := filepath.Join(outDir, base+"_"+s.name+".png")
		if err := p.Save(8*vg.Inch, 4*vg.Inch, file); err != nil {
			return files, errors.Wrapf(err, "failed to save %s", file)
		}
		files = append(files, file)
	}
	return files, nil
}
