// Package main provides a program for scoring text with a trained
// sentiment classifier. It reloads the saved vocabulary and weights and
// prints one predicted label and probability per input line. The model
// shape flags must match the ones used at training time.
package main
