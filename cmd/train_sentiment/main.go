package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"

	"github.com/neurlang/sentiment/datasets"
	"github.com/neurlang/sentiment/datasets/polarity"
	"github.com/neurlang/sentiment/learning"
	"github.com/neurlang/sentiment/net"
	"github.com/neurlang/sentiment/net/embedbag"
	"github.com/neurlang/sentiment/net/embedgru"
	"github.com/neurlang/sentiment/trainer"
	"github.com/neurlang/sentiment/vocab"
)

func main() {
	data := flag.String("data", "", "corpus root with two class subdirectories (neg, pos)")
	dstmodel := flag.String("dstmodel", "", "model destination .json.lzw file")
	dstvocab := flag.String("dstvocab", "", "vocabulary destination .json.lzw file")
	rnn := flag.Bool("rnn", false, "use the recurrent model instead of the embedding-only model")
	balance := flag.Bool("balance", false, "oversample the minority class before fitting")
	resume := flag.Bool("resume", false, "resume training from dstmodel")
	metricslog := flag.String("metricslog", "", "append per-epoch metrics to this file")

	maxvocab := flag.Int("maxvocab", 10000, "max vocabulary size including the sentinel")
	maxlen := flag.Int("maxlen", 200, "fixed sequence length")
	embdim := flag.Int("embdim", 16, "embedding width")
	units := flag.Int("units", 32, "recurrent hidden width")
	epochs := flag.Int("epochs", 10, "training epochs")
	batchsize := flag.Int("batchsize", 32, "batch size")
	valfrac := flag.Float64("valfrac", 0.2, "validation fraction")
	lr := flag.Float64("lr", 1e-3, "learning rate")
	patience := flag.Int("patience", 0, "early stopping patience, 0 disables")
	seed := flag.Int64("seed", 1, "seed for splitting, shuffling and weight init")
	keeppunct := flag.Bool("keeppunct", false, "keep punctuation runes as tokens")
	strict := flag.Bool("strict", false, "abort when an epoch loss goes non-finite")
	flag.Parse()

	if *data == "" {
		println("corpus root is mandatory")
		return
	}

	h := learning.HyperParameters{
		MaxVocabSize:       *maxvocab,
		MaxSeqLen:          *maxlen,
		EmbeddingDim:       *embdim,
		RecurrentUnits:     *units,
		Epochs:             *epochs,
		BatchSize:          *batchsize,
		ValidationFraction: *valfrac,
		LearningRate:       *lr,
		Patience:           *patience,
		Seed:               *seed,
		KeepPunct:          *keeppunct,
		ShuffleEachEpoch:   true,
		StrictDivergence:   *strict,
	}
	if err := h.Validate(); err != nil {
		log.Fatal(err)
	}
	if *metricslog != "" {
		h.SetLogger(*metricslog)
	}

	docs, err := polarity.Load(*data)
	if err != nil {
		log.Fatal(err)
	}
	if *balance {
		docs = polarity.Balance(docs)
	}
	log.Printf("loaded %d documents", len(docs))

	var v *vocab.Vocabulary
	if h.KeepPunct {
		v, err = vocab.FitKeepPunct(polarity.Texts(docs), h.MaxVocabSize)
	} else {
		v, err = vocab.Fit(polarity.Texts(docs), h.MaxVocabSize)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("vocabulary: kept %d of %d unique words", v.Size(), v.TotalUniqueWords)

	seqs := make([][]int, len(docs))
	for i, d := range docs {
		seqs[i] = v.Encode(d.Text)
	}
	features, err := datasets.PadSequences(seqs, h.MaxSeqLen)
	if err != nil {
		log.Fatal(err)
	}
	train, validation, err := datasets.ShuffleSplit(
		datasets.Dataset{Features: features, Labels: polarity.Labels(docs)},
		h.ValidationFraction, h.Seed)
	if err != nil {
		log.Fatal(err)
	}

	rand.Seed(h.Seed)
	var model net.Classifier
	if *rnn {
		model = embedgru.New(v.NumIndices(), h.MaxSeqLen, h.EmbeddingDim, h.RecurrentUnits)
	} else {
		model = embedbag.New(v.NumIndices(), h.MaxSeqLen, h.EmbeddingDim)
	}
	trainer.Resume(model, resume, dstmodel)

	// training runs to completion unless interrupted between batches
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	history, err := trainer.Fit(ctx, model, train, validation, &h)
	if err != nil && err != context.Canceled {
		log.Fatal(err)
	}
	if err == context.Canceled {
		log.Printf("interrupted after %d epochs", len(history))
	}

	if best, ok := trainer.SelectBestEpoch(history); ok {
		fmt.Printf("best epoch %d: val_loss=%.4f val_acc=%.4f\n", best.Epoch, best.ValLoss, best.ValAcc)
	} else {
		println("no completed epoch produced a usable model")
	}

	if *dstmodel != "" {
		if err := net.WriteCompressedWeightsToFile(model, *dstmodel); err != nil {
			println(err.Error())
		}
	}
	if *dstvocab != "" {
		if err := v.WriteCompressedToFile(*dstvocab); err != nil {
			println(err.Error())
		}
	}
}
