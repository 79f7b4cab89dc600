// Package shapes provides a synthetic voxel dataset of spheres, boxes and cylinders.
// It lets the autoencoder trainer run end to end without a prepared shape collection,
// the same way the squareroot dataset exercises a classifier on generated samples.
package shapes
