package word2vec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/unixpickle/w2vgrad"
)

func TestHierarchy(t *testing.T) {
	actual := BuildHierarchy(map[string]float64{
		"a": 0.501,
		"b": 0.25,
		"c": 0.125,
		"d": 0.124,
	})
	expected := Hierarchy{
		"a": []int{-1},
		"b": []int{1, -2},
		"c": []int{1, 2, -3},
		"d": []int{1, 2, 3},
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
	if actual.NumNodes() != 3 {
		t.Errorf("expected 3 nodes but got %d", actual.NumNodes())
	}
}

func TestHierarchySteps(t *testing.T) {
	h := Hierarchy{
		"a": []int{-1},
		"b": []int{1, -2},
		"c": []int{1, 2, -3},
		"d": []int{1, 2, 3},
	}
	rows, signs, ok := h.Steps("c")
	if !ok {
		t.Fatal("missing word")
	}
	if !reflect.DeepEqual(rows, []int{0, 1, 2}) {
		t.Errorf("unexpected rows: %v", rows)
	}
	if !reflect.DeepEqual(signs, []float64{1, 1, -1}) {
		t.Errorf("unexpected signs: %v", signs)
	}
	if _, _, ok := h.Steps("e"); ok {
		t.Error("unexpected steps for unknown word")
	}
}

func TestNewHierarchicalSoftmax(t *testing.T) {
	counts := w2vgrad.TokenCounts{"a": 5, "b": 3, "c": 1}
	tokens := counts.Tokens()
	hs, err := NewHierarchicalSoftmax(BuildHierarchy(counts.Frequencies()), tokens)
	if err != nil {
		t.Fatal(err)
	}
	if len(hs.Rows) != len(tokens) || len(hs.Signs) != len(tokens) {
		t.Fatalf("expected %d paths but got %d", len(tokens), len(hs.Rows))
	}
	if len(hs.Rows[0]) != 1 || len(hs.Rows[2]) != 2 {
		t.Errorf("unexpected rows: %v", hs.Rows)
	}
	for i, rows := range hs.Rows {
		for _, row := range rows {
			if row < 0 || row >= len(tokens) {
				t.Errorf("token %d: row %d out of range", i, row)
			}
		}
	}

	_, err = NewHierarchicalSoftmax(Hierarchy{"a": {-1}, "b": {1}}, w2vgrad.TokenSet{"a", "c"})
	if !errors.Is(err, w2vgrad.ErrUnknownToken) {
		t.Errorf("expected ErrUnknownToken but got %v", err)
	}
}
