package miqp

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Problem holds the dense data of a mixed-integer quadratic program:
//
//	Minimize:   1/2·xᵀQx + cᵀx
//	Subject to: Aᵢ·x = bᵢ  for rows i in EqualityRows
//	            Aᵢ·x ≤ bᵢ  for all other rows
//
// Variables listed in BinaryVars are restricted to {0,1}; every other
// variable ranges over the full real line.
//
// Q, C, and A may each be nil. A nil Q means the objective is purely
// linear, a nil C means there is no linear term, and a nil A means the
// problem is unconstrained. B must be present exactly when A is, with one
// entry per row. At least one of Q and A must be present, otherwise the
// problem is ill-posed.
type Problem struct {
	// Q is the quadratic objective term, or nil.
	Q *mat.SymDense

	// C are the linear objective coefficients, or nil.
	C []float64

	// A is the constraint coefficient matrix, or nil.
	A *mat.Dense

	// B is the constraint right-hand side, one entry per row of A.
	B []float64

	// EqualityRows lists the rows of A solved as equalities.
	EqualityRows []int

	// BinaryVars lists the variables restricted to {0,1}.
	BinaryVars []int
}

// Dims reports the number of variables and constraints. The variable
// count is taken from Q, overridden by A's column count, overridden by
// len(C); the constraint count is len(B) when A is present. Callers may
// supply redundant sources; validate rejects them when they disagree, so
// the precedence only ever picks among agreeing values.
func (p *Problem) Dims() (nVars, nCons int) {
	if p.Q != nil {
		nVars = p.Q.SymmetricDim()
	}
	if p.A != nil {
		_, nVars = p.A.Dims()
		nCons = len(p.B)
	}
	if p.C != nil {
		nVars = len(p.C)
	}
	return nVars, nCons
}

// validate checks the problem's shapes eagerly so malformed data is
// rejected here rather than by the backend.
func (p *Problem) validate() error {
	nVars, nCons := p.Dims()

	if p.Q != nil && p.Q.SymmetricDim() != nVars {
		return fmt.Errorf("%w: Q is %d×%d but the problem has %d variables",
			ErrBadShape, p.Q.SymmetricDim(), p.Q.SymmetricDim(), nVars)
	}
	if p.C != nil && len(p.C) != nVars {
		return fmt.Errorf("%w: c has length %d but the problem has %d variables",
			ErrBadShape, len(p.C), nVars)
	}
	if p.A != nil {
		rows, cols := p.A.Dims()
		if cols != nVars {
			return fmt.Errorf("%w: A has %d columns but the problem has %d variables",
				ErrBadShape, cols, nVars)
		}
		if len(p.B) != rows {
			return fmt.Errorf("%w: A has %d rows but b has length %d",
				ErrBadShape, rows, len(p.B))
		}
	} else if len(p.B) != 0 {
		return fmt.Errorf("%w: b given without A", ErrBadShape)
	}

	for _, i := range p.EqualityRows {
		if i < 0 || i >= nCons {
			return fmt.Errorf("%w: equality row %d out of range [0,%d)", ErrBadShape, i, nCons)
		}
	}
	for _, j := range p.BinaryVars {
		if j < 0 || j >= nVars {
			return fmt.Errorf("%w: binary variable %d out of range [0,%d)", ErrBadShape, j, nVars)
		}
	}
	return nil
}
