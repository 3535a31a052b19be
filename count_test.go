package w2vgrad

import (
	"math"
	"reflect"
	"testing"
)

func TestCountTokens(t *testing.T) {
	counts := CountTokens([][]string{
		{"c", "a", "a"},
		{"b", "b", "a"},
		{"c", "d", "c"},
	})
	expected := TokenCounts{"a": 3, "b": 2, "c": 3, "d": 1}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("expected %v but got %v", expected, counts)
	}
	if tokens := counts.Tokens(); !reflect.DeepEqual(tokens, TokenSet{"a", "b", "c", "d"}) {
		t.Errorf("unexpected tokens: %v", tokens)
	}
	freqs := counts.Frequencies()
	if math.Abs(freqs["a"]-3.0/9) > 1e-12 || math.Abs(freqs["d"]-1.0/9) > 1e-12 {
		t.Errorf("unexpected frequencies: %v", freqs)
	}
}
