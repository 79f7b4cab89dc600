//go:build cuda

package cu

import "fmt"

import "gorgonia.org/cu"

// Available reports whether at least one CUDA device can be enumerated.
func Available() bool {
	n, err := cu.NumDevices()
	return err == nil && n > 0
}

// Describe names the first CUDA device, or "cpu" when there is none.
func Describe() string {
	if !Available() {
		return "cpu"
	}
	dev := cu.Device(0)
	name, err := dev.Name()
	if err != nil {
		return "cuda:0"
	}
	return fmt.Sprintf("cuda:0 (%s)", name)
}
