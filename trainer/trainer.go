package trainer

import (
	"context"
	"log"
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/neurlang/sentiment/datasets"
	"github.com/neurlang/sentiment/learning"
	"github.com/neurlang/sentiment/mat"
	"github.com/neurlang/sentiment/net"
)

// ErrDiverged is returned in strict mode when an epoch loss goes
// non-finite.
var ErrDiverged = errors.New("trainer: loss became non-finite")

// gradient clipping bound on the global parameter gradient norm
const maxGradNorm = 5.0

// EpochStats is one completed epoch's metrics. TrainLoss and TrainAcc
// cover only the batches that produced a parameter update; both are NaN
// when every batch in the epoch diverged.
type EpochStats struct {
	Epoch     int
	TrainLoss float64
	TrainAcc  float64
	ValLoss   float64
	ValAcc    float64
	// Diverged marks an epoch whose training loss went non-finite. The
	// record is kept so callers can inspect and decide.
	Diverged bool
}

// History is the append-only per-epoch record of a training run. A
// partial history from a cancelled run is still valid input to
// SelectBestEpoch.
type History []EpochStats

// SelectBestEpoch returns the record with the minimum validation loss,
// ties broken by earliest epoch. ok is false for an empty history.
// Diverged epochs never win.
func SelectBestEpoch(h History) (best EpochStats, ok bool) {
	for _, e := range h {
		if e.Diverged || math.IsNaN(e.ValLoss) {
			continue
		}
		if !ok || e.ValLoss < best.ValLoss {
			best = e
			ok = true
		}
	}
	return best, ok
}

// Fit trains the model on the train split and evaluates each epoch on the
// validation split, never updating parameters from validation rows.
// Cancellation is checked between batches; the history accumulated so far
// is returned along with the context error. With h.Epochs == 0 the
// returned history is empty and no parameter update happens.
func Fit(ctx context.Context, model net.Classifier, train, validation datasets.Dataset, h *learning.HyperParameters) (History, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if train.Len() == 0 || validation.Len() == 0 {
		return nil, errors.Wrap(datasets.ErrInsufficientData, "trainer")
	}

	log.Printf("fit: %d train rows (%016x), %d validation rows (%016x), %d epochs, batch size %d",
		train.Len(), train.Fingerprint(), validation.Len(), validation.Fingerprint(), h.Epochs, h.BatchSize)

	solver := learning.NewAdamW(h.LearningRate)
	params := model.Parameters()
	rng := rand.New(rand.NewSource(h.Seed))
	order := rng.Perm(train.Len())

	var history History
	bestVal := math.Inf(1)
	sinceBest := 0

	for epoch := 0; epoch < h.Epochs; epoch++ {
		if h.ShuffleEachEpoch && epoch > 0 {
			rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		}

		var sumLoss float64
		var correct, seen int
		diverged := false

		for start := 0; start < len(order); start += h.BatchSize {
			if err := ctx.Err(); err != nil {
				return history, err
			}
			end := start + h.BatchSize
			if end > len(order) {
				end = len(order)
			}
			batch := make([][]int, 0, end-start)
			labels := make([]int, 0, end-start)
			for _, p := range order[start:end] {
				batch = append(batch, train.Features[p])
				labels = append(labels, train.Labels[p])
			}

			g := mat.NewGraph(true)
			logits := model.Forward(g, batch)

			batchLoss := 0.0
			batchCorrect := 0
			for i, y := range labels {
				p := net.Sigmoid(logits.W[i])
				batchLoss += bce(p, y)
				// dL/dlogit for sigmoid + binary cross-entropy
				logits.DW[i] = (p - float64(y)) / float64(len(batch))
				if !math.IsNaN(p) && (p >= 0.5) == (y == 1) {
					batchCorrect++
				}
			}
			batchLoss /= float64(len(batch))

			if math.IsNaN(batchLoss) || math.IsInf(batchLoss, 0) {
				// a single bad batch does not abort the run; skip the
				// update, keep it out of the epoch metrics, and record
				// the epoch as diverged
				diverged = true
				for _, p := range params {
					p.ZeroGrads()
				}
				continue
			}

			g.Backward()
			clipGradients(params)
			solver.Step(params)

			sumLoss += batchLoss * float64(len(batch))
			correct += batchCorrect
			seen += len(batch)
		}

		trainLoss, trainAcc := math.NaN(), math.NaN()
		if seen > 0 {
			trainLoss = sumLoss / float64(seen)
			trainAcc = float64(correct) / float64(seen)
		}
		valLoss, valAcc := Evaluate(model, validation, h.BatchSize)
		stats := EpochStats{
			Epoch:     epoch,
			TrainLoss: trainLoss,
			TrainAcc:  trainAcc,
			ValLoss:   valLoss,
			ValAcc:    valAcc,
			Diverged:  diverged,
		}
		history = append(history, stats)

		log.Printf("epoch %d/%d train_loss=%.4f train_acc=%.4f val_loss=%.4f val_acc=%.4f",
			epoch+1, h.Epochs, stats.TrainLoss, stats.TrainAcc, stats.ValLoss, stats.ValAcc)
		h.Logf("%d\t%.6f\t%.6f\t%.6f\t%.6f", epoch, stats.TrainLoss, stats.TrainAcc, stats.ValLoss, stats.ValAcc)

		if diverged && h.StrictDivergence {
			return history, ErrDiverged
		}

		if valLoss < bestVal {
			bestVal = valLoss
			sinceBest = 0
		} else {
			sinceBest++
			if h.Patience > 0 && sinceBest >= h.Patience {
				log.Printf("early stop: no val_loss improvement in %d epochs", h.Patience)
				break
			}
		}
	}
	return history, nil
}

// FitSplit shuffles the full dataset with h.Seed, holds out
// h.ValidationFraction of the rows, and trains on the rest.
func FitSplit(ctx context.Context, model net.Classifier, full datasets.Dataset, h *learning.HyperParameters) (History, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	train, validation, err := datasets.ShuffleSplit(full, h.ValidationFraction, h.Seed)
	if err != nil {
		return nil, err
	}
	return Fit(ctx, model, train, validation, h)
}

// Evaluate computes loss and accuracy over the dataset in batches without
// tracking gradients or updating parameters.
func Evaluate(model net.Classifier, ds datasets.Dataset, batchSize int) (loss, acc float64) {
	if ds.Len() == 0 {
		return 0, 0
	}
	if batchSize <= 0 {
		batchSize = 32
	}
	var sumLoss float64
	var correct int
	for start := 0; start < ds.Len(); start += batchSize {
		end := start + batchSize
		if end > ds.Len() {
			end = ds.Len()
		}
		probs := model.Predict(ds.Features[start:end])
		for i, p := range probs {
			y := ds.Labels[start+i]
			sumLoss += bce(p, y)
			if (p >= 0.5) == (y == 1) {
				correct++
			}
		}
	}
	return sumLoss / float64(ds.Len()), float64(correct) / float64(ds.Len())
}

func bce(p float64, y int) float64 {
	const floor = 1e-9 // keeps the log finite at saturated probabilities
	if y == 1 {
		return -math.Log(math.Max(p, floor))
	}
	return -math.Log(math.Max(1.0-p, floor))
}

func clipGradients(params []*mat.Mat) {
	var normSq float64
	for _, p := range params {
		for _, dw := range p.DW {
			if !math.IsNaN(dw) && !math.IsInf(dw, 0) {
				normSq += dw * dw
			}
		}
	}
	norm := math.Sqrt(normSq)
	if norm <= maxGradNorm {
		return
	}
	scale := maxGradNorm / norm
	for _, p := range params {
		for i := range p.DW {
			p.DW[i] *= scale
		}
	}
}
