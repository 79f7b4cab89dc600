// Package main decodes random latent codes with a trained autoencoder and prints a text
// slice of every sample, followed by the inception score of a larger sample batch.
package main
