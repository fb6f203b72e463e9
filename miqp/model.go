package miqp

import "gonum.org/v1/gonum/mat"

// VarType classifies a variable in the canonical model.
type VarType int

const (
	// Continuous indicates a variable unbounded over the real line.
	Continuous VarType = iota
	// Binary indicates a variable restricted to {0,1}.
	Binary
)

// String returns a human-readable representation of the variable type.
func (v VarType) String() string {
	switch v {
	case Continuous:
		return "Continuous"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Sense is the relation a constraint row imposes on its right-hand side.
type Sense int

const (
	// LessEq solves the row as Aᵢ·x ≤ bᵢ (default).
	LessEq Sense = iota
	// Equal solves the row as Aᵢ·x = bᵢ.
	Equal
)

// String returns a human-readable representation of the sense.
func (s Sense) String() string {
	switch s {
	case LessEq:
		return "LessEq"
	case Equal:
		return "Equal"
	default:
		return "Unknown"
	}
}

// Config carries the numerical settings applied to a backend call.
type Config struct {
	// FeasibilityTol is the primal feasibility tolerance.
	FeasibilityTol float64

	// OptimalityTol is the dual feasibility / optimality tolerance.
	OptimalityTol float64

	// Presolve enables the backend's presolve phase.
	Presolve bool

	// PreferBasic asks the backend for a method that ends on a basic
	// solution, so row duals are reproducible. Set only when no variable
	// is binary.
	PreferBasic bool

	// Verbose enables the backend's own output.
	Verbose bool

	// TimeLimit bounds the solve in seconds; zero means no limit.
	TimeLimit float64
}

// Model is the canonical mixed-integer quadratic model every entry point
// reduces to. Fields mirror Problem, with the index sets expanded into
// per-variable and per-row arrays.
type Model struct {
	// NumVars is the number of variables.
	NumVars int

	// VarTypes types each variable, parallel to the variable vector.
	VarTypes []VarType

	// Q is the quadratic objective term, or nil.
	Q *mat.SymDense

	// C are the linear objective coefficients, or nil.
	C []float64

	// A is the constraint matrix, or nil when NumCons is zero.
	A *mat.Dense

	// Senses holds one relation per row of A.
	Senses []Sense

	// B is the constraint right-hand side.
	B []float64

	// Config is the numerical configuration for this call.
	Config Config
}

// SolveStatus is the outcome a backend reports for a model.
type SolveStatus int

const (
	// StatusFailed covers every non-converged outcome: infeasible,
	// unbounded, numerical failure, or a limit hit without a solution.
	StatusFailed SolveStatus = iota
	// StatusOptimal indicates the model was solved to optimality.
	StatusOptimal
	// StatusSuboptimal indicates a feasible but not proven-optimal point,
	// e.g. the best incumbent when a limit was reached.
	StatusSuboptimal
)

// String returns a human-readable representation of the status.
func (s SolveStatus) String() string {
	switch s {
	case StatusFailed:
		return "Failed"
	case StatusOptimal:
		return "Optimal"
	case StatusSuboptimal:
		return "Suboptimal"
	default:
		return "Unknown"
	}
}

// Result is the raw outcome of one backend invocation.
type Result struct {
	// Status classifies the termination.
	Status SolveStatus

	// Objective is the objective value at X.
	Objective float64

	// X is the primal solution vector.
	X []float64

	// Slack holds b − A·x per row; nil when the model has no rows.
	Slack []float64

	// Dual holds the row duals; may be nil when the backend has none.
	Dual []float64
}

// Backend is the external solver capability. A backend must treat every
// call independently: fresh solver state per model, no reuse across
// calls. Solve blocks until the solver terminates.
type Backend interface {
	Solve(m *Model) (*Result, error)
}
