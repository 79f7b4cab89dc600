// Package trainer provides the training orchestration of the voxel autoencoder.
// It builds the closures a training program wires together: one optimizer step per
// batch, an evaluation pass on the held out shapes after every epoch, and the epoch
// loop that ties them to checkpoints, the viewer and the console.
package trainer
