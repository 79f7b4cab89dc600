package main

import "os"
import "runtime/pprof"

import "github.com/pkg/errors"

// startProfile collects a CPU profile into path until the returned function is called.
// The default.pgo file it produces feeds profile guided optimization.
func startProfile(path string) (stop func(), err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create profile")
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "cannot start profile")
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
