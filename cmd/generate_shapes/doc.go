// Package main writes a dataset of randomly placed primitive shapes (spheres, boxes and
// cylinders) as signed distance voxel grids in NPY format, optionally gzip compressed.
// It prints the sha256 digest of the file for use with train_autoencoder -datasetsha.
package main
