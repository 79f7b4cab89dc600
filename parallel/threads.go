package parallel

import "runtime"
import "strconv"

import "github.com/klauspost/cpuid/v2"

// Threads reports how many helper goroutines ForEach callers should use.
// It prefers the logical core count detected by cpuid.
func Threads() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// Describe returns a one-line summary of the host CPU for the startup log.
func Describe() string {
	simd := "sse"
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ):
		simd = "avx512"
	case cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3):
		simd = "avx2"
	case cpuid.CPU.Supports(cpuid.ASIMD):
		simd = "neon"
	}
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = runtime.GOARCH
	}
	return brand + " (" + simd + ", " + strconv.Itoa(Threads()) + " threads)"
}

