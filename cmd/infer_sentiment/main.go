package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/neurlang/sentiment/inference"
	"github.com/neurlang/sentiment/net"
	"github.com/neurlang/sentiment/net/embedbag"
	"github.com/neurlang/sentiment/net/embedgru"
	"github.com/neurlang/sentiment/vocab"
)

func main() {
	srcmodel := flag.String("srcmodel", "", "trained model .json.lzw file")
	srcvocab := flag.String("srcvocab", "", "vocabulary .json.lzw file")
	rnn := flag.Bool("rnn", false, "the model was trained with -rnn")
	maxlen := flag.Int("maxlen", 200, "fixed sequence length used at training time")
	embdim := flag.Int("embdim", 16, "embedding width used at training time")
	units := flag.Int("units", 32, "recurrent hidden width used at training time")
	flag.Parse()

	if *srcmodel == "" || *srcvocab == "" {
		println("srcmodel and srcvocab are mandatory")
		return
	}

	v, err := vocab.ReadCompressedFromFile(*srcvocab)
	if err != nil {
		log.Fatal(err)
	}

	var model net.Classifier
	if *rnn {
		model = embedgru.New(v.NumIndices(), *maxlen, *embdim, *units)
	} else {
		model = embedbag.New(v.NumIndices(), *maxlen, *embdim)
	}
	if err := net.ReadCompressedWeightsFromFile(model, *srcmodel); err != nil {
		log.Fatal(err)
	}

	scorer := &inference.Scorer{Vocabulary: v, Model: model, MaxLen: *maxlen}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		label, prob, err := scorer.Classify(line)
		if err != nil {
			log.Fatal(err)
		}
		name := "neg"
		if label == 1 {
			name = "pos"
		}
		fmt.Printf("%s\t%.4f\n", name, prob)
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
