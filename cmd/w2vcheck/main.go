// Command w2vcheck runs the gradient checks for every
// word2vec model and cost function on a toy dataset.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
	"github.com/unixpickle/w2vgrad"
	"github.com/unixpickle/w2vgrad/gradcheck"
	"github.com/unixpickle/w2vgrad/word2vec"
)

func main() {
	var seed, vectorSeed int64
	var radius, batchSize int
	var verbose bool
	flag.Int64Var(&seed, "seed", 31415, "seed for contexts and negative samples")
	flag.Int64Var(&vectorSeed, "vector-seed", 9265, "seed for the initial vectors")
	flag.IntVar(&radius, "radius", 5, "maximum context radius")
	flag.IntVar(&batchSize, "batch", 50, "examples per mini-batch")
	flag.BoolVar(&verbose, "verbose", false, "log every check")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	tokens := w2vgrad.TokenSet{"a", "b", "c", "d", "e"}
	data := &word2vec.UniformDataset{Tokens: tokens}
	vectors := &anyvec.Matrix{
		Data: anyvec64.MakeVector(2 * len(tokens) * 3),
		Rows: 2 * len(tokens),
		Cols: 3,
	}
	anyvec.Rand(vectors.Data, anyvec.Normal, rand.New(rand.NewSource(vectorSeed)))
	vectors = w2vgrad.NormalizeRows(vectors)

	failed := false
	costs := []struct {
		Name string
		Cost word2vec.CostFunc
	}{
		{"softmax", word2vec.Softmax{}},
		{"negative sampling", word2vec.NegSampling{}},
	}
	for _, modelName := range []string{"skip-gram", "CBOW"} {
		for _, cost := range costs {
			var model word2vec.Model
			if modelName == "skip-gram" {
				model = &word2vec.SkipGram{Tokens: tokens, Cost: cost.Cost}
			} else {
				model = &word2vec.CBOW{Tokens: tokens, Cost: cost.Cost}
			}
			batch := &word2vec.MiniBatch{
				Model:     model,
				Data:      data,
				MaxRadius: radius,
				BatchSize: batchSize,
			}
			entry := log.WithFields(logrus.Fields{"model": modelName, "cost": cost.Name})
			entry.Debug("checking gradient")
			if err := checkBatch(batch, vectors, seed); err != nil {
				entry.WithError(err).Error("gradient check failed")
				failed = true
			} else {
				entry.Info("gradient check passed")
			}
		}
	}

	printExamples(log, tokens, data, vectors, seed)
	if failed {
		os.Exit(1)
	}
}

func checkBatch(batch *word2vec.MiniBatch, vectors *anyvec.Matrix, seed int64) error {
	checker := &gradcheck.Checker{}
	return checker.Check(func(x anyvec.Vector) (float64, anyvec.Vector, error) {
		m := &anyvec.Matrix{Data: x, Rows: vectors.Rows, Cols: vectors.Cols}
		cost, grad, err := batch.Gradient(rand.New(rand.NewSource(seed)), m)
		if err != nil {
			return 0, nil, err
		}
		return cost, grad.Data, nil
	}, vectors.Data.Copy())
}

func printExamples(log *logrus.Logger, tokens w2vgrad.TokenSet, data word2vec.Dataset,
	vectors *anyvec.Matrix, seed int64) {
	n := len(tokens)
	in := &anyvec.Matrix{Data: vectors.Data.Slice(0, n*vectors.Cols), Rows: n,
		Cols: vectors.Cols}
	out := &anyvec.Matrix{Data: vectors.Data.Slice(n*vectors.Cols, vectors.Data.Len()),
		Rows: n, Cols: vectors.Cols}
	src := word2vec.NewSource(seed, data)

	examples := []struct {
		Model   word2vec.Model
		Example *word2vec.Example
	}{
		{
			&word2vec.SkipGram{Tokens: tokens},
			&word2vec.Example{Center: "c", Radius: 3,
				Context: []string{"a", "b", "e", "d", "b", "c"}},
		},
		{
			&word2vec.SkipGram{Tokens: tokens, Cost: word2vec.NegSampling{}},
			&word2vec.Example{Center: "c", Radius: 1, Context: []string{"a", "b"}},
		},
		{
			&word2vec.CBOW{Tokens: tokens},
			&word2vec.Example{Center: "a", Radius: 2,
				Context: []string{"a", "b", "c", "a"}},
		},
		{
			&word2vec.CBOW{Tokens: tokens, Cost: word2vec.NegSampling{}},
			&word2vec.Example{Center: "a", Radius: 2,
				Context: []string{"a", "b", "a", "c"}},
		},
	}
	for _, ex := range examples {
		g, err := ex.Model.Gradient(src, ex.Example, in, out)
		if err != nil {
			log.WithError(err).Error("example failed")
			continue
		}
		fmt.Printf("%T %s %v\n", ex.Model, ex.Example.Center, ex.Example.Context)
		fmt.Println("  cost:", g.Cost)
		fmt.Println("  gradIn:", w2vgrad.Float64s(g.In.Data))
		fmt.Println("  gradOut:", w2vgrad.Float64s(g.Out.Data))
	}
}
