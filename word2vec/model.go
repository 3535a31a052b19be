// Package word2vec computes the costs and gradients of the
// skip-gram and CBOW word2vec models.
package word2vec

import (
	"github.com/unixpickle/anyvec"
)

// An Example is a center token and its context window.
type Example struct {
	Center string

	// Radius is the window radius the context was drawn
	// with.
	// The models accept it but only look at Context.
	Radius int

	// Context contains no more than 2*Radius tokens.
	Context []string
}

// Gradient is the cost of an example along with the
// gradients for the input and output vectors.
type Gradient struct {
	Cost float64
	In   *anyvec.Matrix
	Out  *anyvec.Matrix
}

// A Model computes the cost and gradients of a single
// example.
type Model interface {
	// Gradient computes the cost and gradients for an
	// example, given input vectors and output vectors (as
	// rows) for all tokens.
	//
	// The resulting gradients have the same shapes as in
	// and out.
	Gradient(src *Source, ex *Example, in, out *anyvec.Matrix) (*Gradient, error)
}

func costFuncOrDefault(f CostFunc) CostFunc {
	if f == nil {
		return Softmax{}
	}
	return f
}
