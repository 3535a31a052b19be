package word2vec

import (
	"math/rand"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// Defaults for a MiniBatch.
const (
	DefaultBatchSize = 50
	DefaultMaxRadius = 5
)

// A MiniBatch averages the cost and gradients of a Model
// over random examples from a Dataset.
type MiniBatch struct {
	Model Model
	Data  Dataset

	// MaxRadius is the largest window radius.
	// Each example uses a radius drawn uniformly from
	// [1, MaxRadius].
	//
	// If 0, DefaultMaxRadius is used.
	MaxRadius int

	// BatchSize is the number of examples per batch.
	//
	// If 0, DefaultBatchSize is used.
	BatchSize int
}

// Gradient computes the average cost and gradient for one
// batch.
//
// The vectors matrix stacks the input vectors on top of the
// output vectors, so it has two rows per token.
// The gradient has the same layout.
//
// Every random draw comes from gen, so a fixed seed gives a
// fixed batch.
func (m *MiniBatch) Gradient(gen *rand.Rand, vectors *anyvec.Matrix) (float64, *anyvec.Matrix, error) {
	if vectors.Rows%2 != 0 {
		panic("vectors must have an even number of rows")
	}
	batchSize := m.BatchSize
	if batchSize == 0 {
		batchSize = DefaultBatchSize
	}
	maxRadius := m.MaxRadius
	if maxRadius == 0 {
		maxRadius = DefaultMaxRadius
	}

	in, out := splitHalves(vectors)
	grad := &anyvec.Matrix{
		Data: vectors.Data.Creator().MakeVector(vectors.Data.Len()),
		Rows: vectors.Rows,
		Cols: vectors.Cols,
	}
	gradIn, gradOut := splitHalves(grad)

	src := &Source{Gen: gen, Sampler: m.Data}
	scale := vectors.Data.Creator().MakeNumeric(1 / float64(batchSize))
	var cost float64
	for i := 0; i < batchSize; i++ {
		radius := gen.Intn(maxRadius) + 1
		center, context := m.Data.RandomContext(gen, radius)
		ex := &Example{Center: center, Radius: radius, Context: context}
		g, err := m.Model.Gradient(src, ex, in, out)
		if err != nil {
			return 0, nil, essentials.AddCtx("mini-batch", err)
		}
		cost += g.Cost / float64(batchSize)
		g.In.Data.Scale(scale)
		g.Out.Data.Scale(scale)
		gradIn.Data.Add(g.In.Data)
		gradOut.Data.Add(g.Out.Data)
	}
	return cost, grad, nil
}

func splitHalves(m *anyvec.Matrix) (top, bottom *anyvec.Matrix) {
	half := m.Rows / 2
	split := half * m.Cols
	top = &anyvec.Matrix{Data: m.Data.Slice(0, split), Rows: half, Cols: m.Cols}
	bottom = &anyvec.Matrix{Data: m.Data.Slice(split, m.Data.Len()), Rows: half,
		Cols: m.Cols}
	return
}
