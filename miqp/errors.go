package miqp

import "errors"

// Sentinel errors returned by the solve entry points. Callers match them
// with errors.Is; nothing in this package panics on bad input.
var (
	// ErrIllPosed is returned when a problem carries neither a quadratic
	// objective term nor a constraint system. The backend is never invoked.
	ErrIllPosed = errors.New("miqp: problem has neither quadratic term nor constraints")

	// ErrDegenerateInput is returned by SolveLP and SolveMILP when the
	// constraint system is absent or empty. A linear objective without
	// constraints has no finite minimum, so these entry points refuse to
	// delegate instead of risking an unbounded solve.
	ErrDegenerateInput = errors.New("miqp: empty constraint system for a linear program")

	// ErrNotConverged is returned when the backend terminates with any
	// status other than optimal or suboptimal. Infeasible, unbounded, and
	// numerical-failure outcomes are indistinguishable at this layer.
	ErrNotConverged = errors.New("miqp: solver did not reach an optimal or suboptimal point")

	// ErrBadShape is returned when the problem's redundant dimension
	// sources disagree or an index set refers outside the problem.
	ErrBadShape = errors.New("miqp: inconsistent problem dimensions")
)
