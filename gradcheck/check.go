// Package gradcheck verifies analytic gradients against
// finite differences.
package gradcheck

import (
	"fmt"

	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/w2vgrad"
	"gonum.org/v1/gonum/floats/scalar"
)

// Defaults for a Checker.
const (
	DefaultDelta  = 1e-4
	DefaultRelTol = 1e-5
	DefaultAbsTol = 1e-6
)

// A Func computes a scalar cost and its gradient at x.
//
// A Func is called many times and must give the same
// result for the same x.
// Functions which draw random numbers should reseed their
// generators on every call.
type Func func(x anyvec.Vector) (cost float64, grad anyvec.Vector, err error)

// A Checker compares gradients against central difference
// approximations.
//
// Zero fields select the package defaults.
type Checker struct {
	Delta  float64
	RelTol float64
	AbsTol float64
}

// MismatchError reports the first coordinate where the
// analytic and numerical gradients disagree.
type MismatchError struct {
	Index     int
	Analytic  float64
	Numerical float64
}

func (m *MismatchError) Error() string {
	return fmt.Sprintf("gradient mismatch at index %d: analytic %g, numerical %g",
		m.Index, m.Analytic, m.Numerical)
}

// Check evaluates f at x and at x perturbed by ±Delta in
// every coordinate.
//
// Every coordinate of x is restored to its original value
// before Check returns.
// If the gradients disagree, the error is a *MismatchError.
func (c *Checker) Check(f Func, x anyvec.Vector) error {
	_, grad, err := f(x)
	if err != nil {
		return essentials.AddCtx("gradient check", err)
	}
	if grad.Len() != x.Len() {
		panic("incorrect gradient length")
	}
	analytic := w2vgrad.Float64s(grad)

	delta := c.Delta
	if delta == 0 {
		delta = DefaultDelta
	}
	cr := x.Creator()
	for i := 0; i < x.Len(); i++ {
		entry := x.Slice(i, i+1)
		orig := entry.Copy()

		entry.AddScalar(cr.MakeNumeric(delta))
		plus, _, err := f(x)
		if err != nil {
			entry.Set(orig)
			return essentials.AddCtx("gradient check", err)
		}
		entry.Set(orig)
		entry.AddScalar(cr.MakeNumeric(-delta))
		minus, _, err := f(x)
		entry.Set(orig)
		if err != nil {
			return essentials.AddCtx("gradient check", err)
		}

		numerical := (plus - minus) / (2 * delta)
		if !c.agree(analytic[i], numerical) {
			return &MismatchError{Index: i, Analytic: analytic[i], Numerical: numerical}
		}
	}
	return nil
}

func (c *Checker) agree(analytic, numerical float64) bool {
	relTol, absTol := c.RelTol, c.AbsTol
	if relTol == 0 {
		relTol = DefaultRelTol
	}
	if absTol == 0 {
		absTol = DefaultAbsTol
	}
	return scalar.EqualWithinAbsOrRel(analytic, numerical, absTol, relTol)
}
