// Package highsbackend implements the miqp solver capability with the
// HiGHS solver via github.com/bartolsthoorn/gohighs.
//
// Each Solve call builds a fresh HiGHS model: constraint senses become
// row bound pairs (= → [b,b], ≤ → (-inf,b]), binary variables become
// integer variables bounded to [0,1], and the symmetric Q is passed as
// its upper triangle.
package highsbackend

import (
	"math"

	"github.com/bartolsthoorn/gohighs/highs"
	"gonum.org/v1/gonum/mat"

	"github.com/cacodcar/densesolve/miqp"
)

// Backend solves canonical models with HiGHS. The zero value is ready to
// use; no state is carried between calls.
type Backend struct{}

// New returns a HiGHS-backed miqp.Backend.
func New() *Backend {
	return &Backend{}
}

// Solve implements miqp.Backend.
func (be *Backend) Solve(m *miqp.Model) (*miqp.Result, error) {
	model := highs.Model{
		ColCosts: m.C,
		ColLower: make([]float64, m.NumVars),
		ColUpper: make([]float64, m.NumVars),
	}
	for j := 0; j < m.NumVars; j++ {
		model.ColLower[j] = math.Inf(-1)
		model.ColUpper[j] = math.Inf(1)
	}
	for j, vt := range m.VarTypes {
		if vt != miqp.Binary {
			continue
		}
		if model.VarTypes == nil {
			model.VarTypes = make([]highs.VariableType, m.NumVars)
		}
		model.VarTypes[j] = highs.Integer
		model.ColLower[j], model.ColUpper[j] = 0, 1
	}

	if m.A != nil {
		rows, _ := m.A.Dims()
		for i := 0; i < rows; i++ {
			if m.Senses[i] == miqp.Equal {
				model.AddDenseRow(m.B[i], m.A.RawRowView(i), m.B[i])
			} else {
				model.AddDenseRow(math.Inf(-1), m.A.RawRowView(i), m.B[i])
			}
		}
	}

	if m.Q != nil {
		model.Hessian = upperTriangle(m.Q)
	}

	sol, err := model.Solve(be.options(m)...)
	if err != nil {
		return nil, err
	}

	res := &miqp.Result{
		Status:    statusOf(sol),
		Objective: sol.Objective,
		X:         sol.ColValues,
	}
	if m.A != nil {
		rows, _ := m.A.Dims()
		res.Slack = make([]float64, rows)
		for i := range res.Slack {
			res.Slack[i] = m.B[i] - sol.RowValues[i]
		}
		if len(sol.RowDuals) == rows {
			res.Dual = sol.RowDuals
		}
	}
	return res, nil
}

func (be *Backend) options(m *miqp.Model) []highs.SolveOption {
	presolve := "off"
	if m.Config.Presolve {
		presolve = "choose"
	}
	opts := []highs.SolveOption{
		highs.WithOutput(m.Config.Verbose),
		highs.WithPresolve(presolve),
		highs.WithFloatOption("primal_feasibility_tolerance", m.Config.FeasibilityTol),
		highs.WithFloatOption("dual_feasibility_tolerance", m.Config.OptimalityTol),
	}
	if m.Config.PreferBasic && m.Q == nil {
		// Simplex ends on a basic solution, so the row duals are
		// reproducible. HiGHS picks its own method for quadratic models.
		opts = append(opts, highs.WithStringOption("solver", "simplex"))
	}
	if m.Config.TimeLimit > 0 {
		opts = append(opts, highs.WithTimeLimit(m.Config.TimeLimit))
	}
	return opts
}

// statusOf folds the HiGHS model status into the three-way core status:
// optimal, suboptimal (a feasible incumbent at a bound or limit), or
// failed.
func statusOf(sol *highs.Solution) miqp.SolveStatus {
	switch {
	case sol.Status == highs.ModelStatusOptimal:
		return miqp.StatusOptimal
	case sol.Status.HasSolution():
		return miqp.StatusSuboptimal
	default:
		return miqp.StatusFailed
	}
}

// upperTriangle flattens the upper triangle of q into HiGHS Hessian
// entries. For the 1/2·xᵀQx objective the triangular format takes Q's
// upper-triangle values as-is, symmetry being implied.
func upperTriangle(q *mat.SymDense) []highs.Nonzero {
	n := q.SymmetricDim()
	var nz []highs.Nonzero
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if v := q.At(i, j); v != 0 {
				nz = append(nz, highs.Nonzero{Row: i, Col: j, Val: v})
			}
		}
	}
	return nz
}
