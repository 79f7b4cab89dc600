// Package cu reports whether a CUDA device is present. Built without the cuda tag
// it always reports the CPU. The training math itself runs on gonum either way.
package cu
