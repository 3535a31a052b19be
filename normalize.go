package w2vgrad

import "github.com/unixpickle/anyvec"

// NormalizeRows creates a copy of the matrix in which
// every row has unit Euclidean norm.
//
// Rows must be non-zero; a zero row produces non-finite
// entries.
func NormalizeRows(m *anyvec.Matrix) *anyvec.Matrix {
	if m.Data.Len() != m.Rows*m.Cols {
		panic("incorrect matrix size")
	}
	c := m.Data.Creator()
	squares := m.Data.Copy()
	anyvec.Pow(squares, c.MakeNumeric(2))
	normalizers := anyvec.SumCols(squares, m.Rows)
	anyvec.Pow(normalizers, c.MakeNumeric(-0.5))

	data := m.Data.Copy()
	anyvec.ScaleChunks(data, normalizers)
	return &anyvec.Matrix{
		Data: data,
		Rows: m.Rows,
		Cols: m.Cols,
	}
}

// Row returns a reference to a row of the matrix.
// Modifying the result modifies the matrix.
func Row(m *anyvec.Matrix, row int) anyvec.Vector {
	idx := m.Cols * row
	return m.Data.Slice(idx, idx+m.Cols)
}

// ZerosLike creates a zero matrix with the same shape and
// numeric type as m.
func ZerosLike(m *anyvec.Matrix) *anyvec.Matrix {
	return &anyvec.Matrix{
		Data: m.Data.Creator().MakeVector(m.Rows * m.Cols),
		Rows: m.Rows,
		Cols: m.Cols,
	}
}

// Float64s copies the contents of a vector into a slice.
func Float64s(v anyvec.Vector) []float64 {
	switch data := v.Data().(type) {
	case []float64:
		return data
	case []float32:
		return widen(data)
	default:
		panic("unsupported numeric type")
	}
}

// Float64 converts a numeric to a float64.
func Float64(n anyvec.Numeric) float64 {
	switch n := n.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	default:
		panic("unsupported numeric type")
	}
}

func widen(data []float32) []float64 {
	res := make([]float64, len(data))
	for i, x := range data {
		res[i] = float64(x)
	}
	return res
}
