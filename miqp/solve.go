// Package miqp formulates dense linear and quadratic programs — with or
// without binary variables — as a single canonical mixed-integer
// quadratic model, hands that model to a solver backend, and extracts a
// standardized solution record with numerically tolerant post-processing.
//
// Every entry point funnels through SolveMIQP:
//
//	out, err := miqp.SolveLP(backend, miqp.Problem{
//		C: []float64{1, 1},
//		A: mat.NewDense(2, 2, []float64{-1, 0, 0, -1}),
//		B: []float64{0, 0},
//	})
//	if err != nil {
//		// errors.Is against ErrIllPosed, ErrDegenerateInput,
//		// ErrNotConverged, ErrBadShape
//	}
//	fmt.Println(out.Obj, out.Sol, out.ActiveSet)
//
// The solving algorithm itself is an external collaborator behind the
// Backend interface; package highsbackend provides the production
// implementation.
package miqp

// SolveOption adjusts a single solve call.
type SolveOption func(*solveConfig)

type solveConfig struct {
	duals     bool
	verbose   bool
	feasTol   float64
	optTol    float64
	timeLimit float64
}

func defaultSolveConfig() *solveConfig {
	return &solveConfig{
		duals:   true,
		feasTol: defaultFeasibilityTol,
		optTol:  defaultOptimalityTol,
	}
}

// WithDuals controls whether Lagrange multipliers are extracted.
// Defaults to true; they are withheld regardless for mixed-integer
// models.
func WithDuals(enabled bool) SolveOption {
	return func(c *solveConfig) {
		c.duals = enabled
	}
}

// WithVerbose enables the backend solver's own output.
func WithVerbose(enabled bool) SolveOption {
	return func(c *solveConfig) {
		c.verbose = enabled
	}
}

// WithFeasibilityTol overrides the primal feasibility tolerance.
func WithFeasibilityTol(tol float64) SolveOption {
	return func(c *solveConfig) {
		c.feasTol = tol
	}
}

// WithOptimalityTol overrides the optimality tolerance.
func WithOptimalityTol(tol float64) SolveOption {
	return func(c *solveConfig) {
		c.optTol = tol
	}
}

// WithTimeLimit bounds the backend solve in seconds. The limit is
// forwarded opaquely; this layer does not cancel a running solve.
func WithTimeLimit(seconds float64) SolveOption {
	return func(c *solveConfig) {
		c.timeLimit = seconds
	}
}

// SolveMIQP builds the canonical mixed-integer quadratic model for p,
// solves it on be, and extracts the solution record. It returns
// ErrIllPosed without touching the backend when p has neither Q nor A,
// ErrBadShape when p's dimensions are inconsistent, and ErrNotConverged
// when the backend terminates without an optimal or suboptimal point.
func SolveMIQP(be Backend, p Problem, opts ...SolveOption) (*SolverOutput, error) {
	if p.Q == nil && p.A == nil {
		return nil, ErrIllPosed
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	nVars, nCons := p.Dims()

	m := &Model{
		NumVars:  nVars,
		VarTypes: make([]VarType, nVars),
		Q:        p.Q,
		C:        p.C,
		Config: Config{
			FeasibilityTol: cfg.feasTol,
			OptimalityTol:  cfg.optTol,
			Presolve:       false,
			PreferBasic:    len(p.BinaryVars) == 0,
			Verbose:        cfg.verbose,
			TimeLimit:      cfg.timeLimit,
		},
	}
	for _, j := range p.BinaryVars {
		m.VarTypes[j] = Binary
	}
	if nCons > 0 {
		m.A = p.A
		m.B = p.B
		m.Senses = make([]Sense, nCons)
		for _, i := range p.EqualityRows {
			m.Senses[i] = Equal
		}
	}

	res, err := be.Solve(m)
	if err != nil {
		return nil, err
	}
	if res.Status != StatusOptimal && res.Status != StatusSuboptimal {
		return nil, ErrNotConverged
	}
	return extract(p, res, nCons, cfg.duals), nil
}

// extract derives the solution record from a converged backend result.
func extract(p Problem, res *Result, nCons int, wantDuals bool) *SolverOutput {
	out := &SolverOutput{
		Obj: res.Objective,
		Sol: res.X,
	}
	if nCons == 0 {
		return out
	}
	out.Slack = res.Slack
	out.ActiveSet = activeSet(p.A, p.B, res.X)
	if wantDuals && len(p.BinaryVars) == 0 {
		out.Dual = res.Dual
	}
	return out
}

// SolveQP solves a quadratic program over continuous variables. Any
// BinaryVars on p are ignored.
func SolveQP(be Backend, p Problem, opts ...SolveOption) (*SolverOutput, error) {
	p.BinaryVars = nil
	return SolveMIQP(be, p, opts...)
}

// SolveLP solves a linear program over continuous variables. An absent
// or empty constraint system is rejected with ErrDegenerateInput before
// the backend is invoked: a linear objective without constraints has no
// finite minimum. Any Q on p is ignored.
func SolveLP(be Backend, p Problem, opts ...SolveOption) (*SolverOutput, error) {
	if emptyConstraints(p) {
		return nil, ErrDegenerateInput
	}
	p.Q = nil
	p.BinaryVars = nil
	return SolveMIQP(be, p, opts...)
}

// SolveMILP solves a mixed-integer linear program. It shares SolveLP's
// precondition on the constraint system and passes BinaryVars through.
func SolveMILP(be Backend, p Problem, opts ...SolveOption) (*SolverOutput, error) {
	if emptyConstraints(p) {
		return nil, ErrDegenerateInput
	}
	p.Q = nil
	return SolveMIQP(be, p, opts...)
}

func emptyConstraints(p Problem) bool {
	if p.A == nil || len(p.B) == 0 {
		return true
	}
	rows, cols := p.A.Dims()
	return rows == 0 || cols == 0
}
