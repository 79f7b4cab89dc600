// Package trainlog records per-epoch training metrics.
//
// The primary record is a space separated text file with one line per epoch:
//
//	epoch seconds reconstruction kld voxel_diff inception
//
// An optional sqlite Store keeps the same metrics keyed by run so several runs can
// be compared later.
package trainlog
