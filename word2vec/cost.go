package word2vec

import (
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/w2vgrad"
)

// A CostFunc computes the cost of predicting one target
// token from a predicted vector, along with the gradients
// of that cost.
type CostFunc interface {
	// CostAndGrad computes the cost and gradients for a
	// predicted vector, a target token index, and the
	// output vectors (as rows) for all tokens.
	//
	// The source is used for any random draws.
	CostAndGrad(src *Source, predicted anyvec.Vector, target int,
		out *anyvec.Matrix) *Result
}

// Result is the output of a CostFunc.
type Result struct {
	Cost float64

	// GradPred is the gradient with respect to the
	// predicted vector.
	GradPred anyvec.Vector

	// GradOut is the gradient with respect to the output
	// vectors.
	GradOut *anyvec.Matrix
}

// Softmax is a CostFunc using the full softmax and cross
// entropy loss.
// It never uses its Source.
type Softmax struct{}

// CostAndGrad computes the softmax cross entropy cost.
func (s Softmax) CostAndGrad(src *Source, predicted anyvec.Vector, target int,
	out *anyvec.Matrix) *Result {
	checkShapes(predicted, target, out)
	c := predicted.Creator()
	one, zero := c.MakeNumeric(1), c.MakeNumeric(0)
	predMat := columnMatrix(predicted)

	scores := &anyvec.Matrix{Data: c.MakeVector(out.Rows), Rows: out.Rows, Cols: 1}
	scores.Product(false, false, one, out, predMat, zero)
	anyvec.LogSoftmax(scores.Data, out.Rows)
	cost := -w2vgrad.Float64(anyvec.Sum(scores.Data.Slice(target, target+1)))

	delta := scores
	anyvec.Exp(delta.Data)
	delta.Data.Slice(target, target+1).AddScalar(c.MakeNumeric(-1))

	gradPred := &anyvec.Matrix{Data: c.MakeVector(out.Cols), Rows: out.Cols, Cols: 1}
	gradPred.Product(true, false, one, out, delta, zero)

	gradOut := w2vgrad.ZerosLike(out)
	gradOut.Product(false, true, one, delta, predMat, zero)

	return &Result{
		Cost:     cost,
		GradPred: gradPred.Data,
		GradOut:  gradOut,
	}
}

func checkShapes(predicted anyvec.Vector, target int, out *anyvec.Matrix) {
	if predicted.Len() != out.Cols {
		panic("incorrect vector length")
	}
	if target < 0 || target >= out.Rows {
		panic("target out of range")
	}
}

func columnMatrix(v anyvec.Vector) *anyvec.Matrix {
	return &anyvec.Matrix{Data: v, Rows: v.Len(), Cols: 1}
}
