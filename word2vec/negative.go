package word2vec

import (
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/w2vgrad"
)

// DefaultNegativeSamples is the number of negative
// samples drawn when NegSampling.K is 0.
const DefaultNegativeSamples = 10

// NegativeSamples draws k token indices which are not the
// target.
//
// Draws equal to the target are repeated; duplicates among
// the k samples are kept.
// The sampler must be able to produce some index other
// than the target, or NegativeSamples never returns.
func NegativeSamples(src *Source, target, k int) []int {
	indices := make([]int, k)
	for i := range indices {
		idx := src.SampleToken()
		for idx == target {
			idx = src.SampleToken()
		}
		indices[i] = idx
	}
	return indices
}

// NegSampling is a CostFunc which contrasts the target
// against randomly drawn negative tokens.
type NegSampling struct {
	// K is the number of negative samples.
	// If 0, DefaultNegativeSamples is used.
	K int
}

// CostAndGrad computes the negative sampling cost.
//
// A token drawn more than once contributes to the cost and
// gradients once per draw.
func (n NegSampling) CostAndGrad(src *Source, predicted anyvec.Vector, target int,
	out *anyvec.Matrix) *Result {
	checkShapes(predicted, target, out)
	k := n.K
	if k == 0 {
		k = DefaultNegativeSamples
	}
	indices := append([]int{target}, NegativeSamples(src, target, k)...)

	// The target is scored with σ(x), the samples with σ(-x).
	signs := make([]float64, len(indices))
	for i := range signs {
		signs[i] = -1
	}
	signs[0] = 1
	return sigmoidCost(predicted, out, indices, signs)
}

// sigmoidCost computes -Σ log σ(signs[i] * out[indices[i]]·predicted)
// and its gradients.
func sigmoidCost(predicted anyvec.Vector, out *anyvec.Matrix, indices []int,
	signs []float64) *Result {
	c := predicted.Creator()
	logits := make([]float64, len(indices))
	for i, idx := range indices {
		dot := w2vgrad.Float64(w2vgrad.Row(out, idx).Dot(predicted))
		logits[i] = signs[i] * dot
	}
	probs := c.MakeVectorData(c.MakeNumericList(logits))
	anyvec.Sigmoid(probs)
	logProbs := probs.Copy()
	anyvec.Log(logProbs)

	res := &Result{
		Cost:     -w2vgrad.Float64(anyvec.Sum(logProbs)),
		GradPred: c.MakeVector(predicted.Len()),
		GradOut:  w2vgrad.ZerosLike(out),
	}
	for i, p := range w2vgrad.Float64s(probs) {
		// d/dx of -log σ(s·x) is s·(σ(s·x) - 1).
		scale := c.MakeNumeric(signs[i] * (p - 1))

		row := w2vgrad.Row(out, indices[i]).Copy()
		row.Scale(scale)
		res.GradPred.Add(row)

		rowGrad := predicted.Copy()
		rowGrad.Scale(scale)
		w2vgrad.Row(res.GradOut, indices[i]).Add(rowGrad)
	}
	return res
}
