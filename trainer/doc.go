// Package trainer provides high-level training orchestration for sentiment
// classifiers. It runs the epoch loop over a split dataset, records
// per-epoch loss and accuracy, selects the best checkpoint by validation
// loss, and honors cooperative cancellation between batches.
package trainer
