package word2vec

import (
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/w2vgrad"
)

// SkipGram is a Model which predicts each context token
// from the center token's input vector.
type SkipGram struct {
	Tokens w2vgrad.TokenSet

	// Cost is applied to every context token.
	// If nil, Softmax is used.
	Cost CostFunc
}

// Gradient computes the skip-gram cost, which is the sum
// of the costs of every context token.
//
// Only the center token's row of the input gradient is
// non-zero.
func (s *SkipGram) Gradient(src *Source, ex *Example, in, out *anyvec.Matrix) (*Gradient, error) {
	center, err := s.Tokens.ID(ex.Center)
	if err != nil {
		return nil, essentials.AddCtx("skip-gram", err)
	}
	targets, err := s.Tokens.IDs(ex.Context)
	if err != nil {
		return nil, essentials.AddCtx("skip-gram", err)
	}

	costFunc := costFuncOrDefault(s.Cost)
	predicted := w2vgrad.Row(in, center)
	res := &Gradient{
		In:  w2vgrad.ZerosLike(in),
		Out: w2vgrad.ZerosLike(out),
	}
	centerGrad := w2vgrad.Row(res.In, center)
	for _, target := range targets {
		r := costFunc.CostAndGrad(src, predicted, target, out)
		res.Cost += r.Cost
		centerGrad.Add(r.GradPred)
		res.Out.Data.Add(r.GradOut.Data)
	}
	return res, nil
}
