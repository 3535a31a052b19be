package word2vec

import (
	"math"
	"math/rand"
	"testing"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec64"
	"github.com/unixpickle/w2vgrad"
	"gonum.org/v1/gonum/floats"
)

var toyTokens = w2vgrad.TokenSet{"a", "b", "c", "d", "e"}

func toyDataset() *UniformDataset {
	return &UniformDataset{Tokens: toyTokens}
}

// toyVectors stacks 5 input vectors on top of 5 output
// vectors, all with unit norm.
func toyVectors() *anyvec.Matrix {
	m := &anyvec.Matrix{Data: anyvec64.MakeVector(10 * 3), Rows: 10, Cols: 3}
	anyvec.Rand(m.Data, anyvec.Normal, rand.New(rand.NewSource(9265)))
	return w2vgrad.NormalizeRows(m)
}

func TestSkipGramExample(t *testing.T) {
	in, out := splitHalves(toyVectors())
	for _, costFunc := range []CostFunc{Softmax{}, NegSampling{}} {
		model := &SkipGram{Tokens: toyTokens, Cost: costFunc}
		ex := &Example{
			Center:  "c",
			Radius:  3,
			Context: []string{"a", "b", "e", "d", "b", "c"},
		}
		g, err := model.Gradient(NewSource(31415, toyDataset()), ex, in, out)
		if err != nil {
			t.Fatal(err)
		}
		if math.IsNaN(g.Cost) || math.IsInf(g.Cost, 0) || g.Cost <= 0 {
			t.Errorf("%T: bad cost %v", costFunc, g.Cost)
		}
		if g.In.Rows != 5 || g.In.Cols != 3 || g.Out.Rows != 5 || g.Out.Cols != 3 {
			t.Fatalf("%T: bad gradient shapes", costFunc)
		}
		for i := 0; i < 5; i++ {
			row := w2vgrad.Float64s(w2vgrad.Row(g.In, i))
			zero := floats.Equal(row, []float64{0, 0, 0})
			if i == 2 && zero {
				t.Errorf("%T: center row should be non-zero", costFunc)
			} else if i != 2 && !zero {
				t.Errorf("%T: row %d should be zero but got %v", costFunc, i, row)
			}
		}
	}
}

func TestSkipGramSum(t *testing.T) {
	in, out := splitHalves(toyVectors())
	model := &SkipGram{Tokens: toyTokens}
	context := []string{"a", "e", "a"}
	total, err := model.Gradient(nil, &Example{Center: "b", Radius: 2, Context: context},
		in, out)
	if err != nil {
		t.Fatal(err)
	}
	var cost float64
	expectedOut := make([]float64, 15)
	for _, tok := range context {
		g, err := model.Gradient(nil, &Example{Center: "b", Radius: 1,
			Context: []string{tok}}, in, out)
		if err != nil {
			t.Fatal(err)
		}
		cost += g.Cost
		floats.Add(expectedOut, w2vgrad.Float64s(g.Out.Data))
	}
	if math.Abs(cost-total.Cost) > 1e-10 {
		t.Errorf("expected cost %v but got %v", cost, total.Cost)
	}
	if !floats.EqualApprox(expectedOut, w2vgrad.Float64s(total.Out.Data), 1e-10) {
		t.Error("output gradient is not the sum over the context")
	}
}

func TestCBOWRepeatedContext(t *testing.T) {
	in, out := splitHalves(toyVectors())
	for _, costFunc := range []CostFunc{Softmax{}, NegSampling{}} {
		model := &CBOW{Tokens: toyTokens, Cost: costFunc}
		ex := &Example{Center: "a", Radius: 2, Context: []string{"a", "b", "c", "a"}}
		g, err := model.Gradient(NewSource(31415, toyDataset()), ex, in, out)
		if err != nil {
			t.Fatal(err)
		}
		rowA := w2vgrad.Float64s(w2vgrad.Row(g.In, 0))
		rowB := w2vgrad.Float64s(w2vgrad.Row(g.In, 1))
		rowC := w2vgrad.Float64s(w2vgrad.Row(g.In, 2))
		if floats.Equal(rowB, []float64{0, 0, 0}) {
			t.Fatalf("%T: context row should be non-zero", costFunc)
		}
		doubled := append([]float64{}, rowB...)
		floats.Scale(2, doubled)
		if !floats.EqualApprox(rowA, doubled, 1e-12) {
			t.Errorf("%T: repeated token should get twice the gradient: %v vs %v",
				costFunc, rowA, rowB)
		}
		if !floats.EqualApprox(rowB, rowC, 1e-12) {
			t.Errorf("%T: context rows should match", costFunc)
		}
		for _, i := range []int{3, 4} {
			if !floats.Equal(w2vgrad.Float64s(w2vgrad.Row(g.In, i)), []float64{0, 0, 0}) {
				t.Errorf("%T: row %d should be zero", costFunc, i)
			}
		}
	}
}

func TestCBOWPredictedSum(t *testing.T) {
	in, out := splitHalves(toyVectors())
	model := &CBOW{Tokens: toyTokens}
	g, err := model.Gradient(nil, &Example{Center: "d", Radius: 1,
		Context: []string{"a", "b"}}, in, out)
	if err != nil {
		t.Fatal(err)
	}
	predicted := w2vgrad.Row(in, 0).Copy()
	predicted.Add(w2vgrad.Row(in, 1))
	expected := Softmax{}.CostAndGrad(nil, predicted, 3, out)
	if math.Abs(expected.Cost-g.Cost) > 1e-12 {
		t.Errorf("expected cost %v but got %v", expected.Cost, g.Cost)
	}
	if !floats.EqualApprox(w2vgrad.Float64s(expected.GradOut.Data),
		w2vgrad.Float64s(g.Out.Data), 1e-12) {
		t.Error("output gradient should pass through unchanged")
	}
}

func TestModelUnknownToken(t *testing.T) {
	in, out := splitHalves(toyVectors())
	models := []Model{&SkipGram{Tokens: toyTokens}, &CBOW{Tokens: toyTokens}}
	examples := []*Example{
		{Center: "z", Radius: 1, Context: []string{"a"}},
		{Center: "a", Radius: 1, Context: []string{"b", "z"}},
	}
	for _, model := range models {
		for _, ex := range examples {
			if _, err := model.Gradient(nil, ex, in, out); err == nil {
				t.Errorf("%T: expected error for %v", model, ex)
			}
		}
	}
}
