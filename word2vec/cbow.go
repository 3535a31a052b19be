package word2vec

import (
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/w2vgrad"
)

// CBOW is a Model which predicts the center token from the
// sum of the context tokens' input vectors.
type CBOW struct {
	Tokens w2vgrad.TokenSet

	// Cost is applied to the center token.
	// If nil, Softmax is used.
	Cost CostFunc
}

// Gradient computes the CBOW cost.
//
// Every occurrence of a context token adds the gradient of
// the predicted vector to that token's row, so a token
// which appears twice receives it twice.
func (c *CBOW) Gradient(src *Source, ex *Example, in, out *anyvec.Matrix) (*Gradient, error) {
	target, err := c.Tokens.ID(ex.Center)
	if err != nil {
		return nil, essentials.AddCtx("CBOW", err)
	}
	context, err := c.Tokens.IDs(ex.Context)
	if err != nil {
		return nil, essentials.AddCtx("CBOW", err)
	}

	predicted := in.Data.Creator().MakeVector(in.Cols)
	for _, idx := range context {
		predicted.Add(w2vgrad.Row(in, idx))
	}

	r := costFuncOrDefault(c.Cost).CostAndGrad(src, predicted, target, out)
	res := &Gradient{
		Cost: r.Cost,
		In:   w2vgrad.ZerosLike(in),
		Out:  r.GradOut,
	}
	for _, idx := range context {
		w2vgrad.Row(res.In, idx).Add(r.GradPred)
	}
	return res, nil
}
