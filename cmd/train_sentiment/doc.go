// Package main provides a program for training a sentiment polarity
// classifier from a two-class text corpus on disk. It builds the
// vocabulary, encodes and splits the corpus, fits either the
// embedding-only or the recurrent model, and saves the best weights and
// the vocabulary for later inference.
package main
