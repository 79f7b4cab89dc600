// Package main draws the curves of a training log written by train_autoencoder.
// Every metric gets its own PNG next to the log, with the epoch on the x axis.
package main
