//go:build !cuda

package cu

// Available reports whether at least one CUDA device can be enumerated.
func Available() bool {
	return false
}

// Describe names the first CUDA device, or "cpu" when there is none.
func Describe() string {
	return "cpu"
}
