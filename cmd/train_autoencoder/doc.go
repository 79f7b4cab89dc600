// Package main trains the voxel variational autoencoder.
//
// It holds out a seeded 5% of the shapes for evaluation, trains on batches of 32 with
// Adam, rewrites the model checkpoint after every epoch and appends one line per
// epoch to plots/autoencoder_training.csv. Without -dataset it trains on generated
// primitive shapes. Interrupt (Ctrl-C) stops training between two batches.
//
// Usage:
//
//	train_autoencoder [-continue] [-nogui] [-verbose] [-show_slice] [-dataset voxels.npy.gz]
//
// The mode words may also be given without the leading dash, e.g. `train_autoencoder nogui verbose`.
package main
