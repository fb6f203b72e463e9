package miqp

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	defaultFeasibilityTol = 1e-9
	defaultOptimalityTol  = 1e-9

	// activeSetTol gates active-set membership on the squared residual
	// (A·x − b)ᵢ². Derived from the 1e-9 backend feasibility tolerance;
	// do not change one without the other.
	activeSetTol = 1e-12

	// objEqTol bounds the squared objective gap in ApproxEqual.
	objEqTol = 1e-10

	// vecEqTol is the per-element tolerance in ApproxEqual.
	vecEqTol = 1e-8
)

// SolverOutput is the standardized record of a successful solve. It is
// constructed once per call and never mutated afterwards.
type SolverOutput struct {
	// Obj is the optimal (or best-found, for mixed-integer models)
	// objective value.
	Obj float64

	// Sol is the primal variable assignment.
	Sol []float64

	// Slack holds b − A·x per constraint; nil for unconstrained problems.
	Slack []float64

	// ActiveSet lists the constraints binding at Sol, in row order; nil
	// for unconstrained problems.
	ActiveSet []int

	// Dual holds the Lagrange multipliers; nil for unconstrained
	// problems, when duals were not requested, or when any variable is
	// binary (mixed-integer duals are not meaningful).
	Dual []float64
}

// ApproxEqual reports whether two records agree within numerical
// tolerance: Sol, Slack, and Dual element-wise within 1e-8, identical
// active sets, and a squared objective gap below 1e-10.
func (s *SolverOutput) ApproxEqual(o *SolverOutput) bool {
	if s == nil || o == nil {
		return s == o
	}
	if d := s.Obj - o.Obj; d*d >= objEqTol {
		return false
	}
	if !vecsClose(s.Sol, o.Sol) || !vecsClose(s.Slack, o.Slack) || !vecsClose(s.Dual, o.Dual) {
		return false
	}
	if len(s.ActiveSet) != len(o.ActiveSet) {
		return false
	}
	for i, v := range s.ActiveSet {
		if o.ActiveSet[i] != v {
			return false
		}
	}
	return true
}

func vecsClose(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return floats.EqualApprox(a, b, vecEqTol)
}

// activeSet returns the rows of A binding at x. A row is binding when its
// squared residual is below activeSetTol, which recovers the binding set
// from a slightly infeasible floating-point solution.
func activeSet(a *mat.Dense, b, x []float64) []int {
	rows, _ := a.Dims()
	r := mat.NewVecDense(rows, nil)
	r.MulVec(a, mat.NewVecDense(len(x), x))

	active := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		if d := r.AtVec(i) - b[i]; d*d < activeSetTol {
			active = append(active, i)
		}
	}
	return active
}
