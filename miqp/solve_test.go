package miqp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cacodcar/densesolve/miqp"
)

// stubBackend records every model it is handed and replies with a canned
// result, so tests can observe exactly what reaches the solver boundary.
type stubBackend struct {
	calls  int
	models []*miqp.Model
	result *miqp.Result
	err    error
}

func (s *stubBackend) Solve(m *miqp.Model) (*miqp.Result, error) {
	s.calls++
	s.models = append(s.models, m)
	return s.result, s.err
}

func optimal(obj float64, x []float64) *miqp.Result {
	return &miqp.Result{Status: miqp.StatusOptimal, Objective: obj, X: x}
}

func TestSolveMIQPIllPosed(t *testing.T) {
	be := &stubBackend{}
	out, err := miqp.SolveMIQP(be, miqp.Problem{C: []float64{1, 2}})
	require.ErrorIs(t, err, miqp.ErrIllPosed)
	assert.Nil(t, out)
	assert.Zero(t, be.calls, "ill-posed problem must not reach the backend")
}

func TestSolveLPDegenerateInput(t *testing.T) {
	be := &stubBackend{}

	cases := map[string]miqp.Problem{
		"no A":      {C: []float64{1}, B: []float64{0}},
		"no B":      {C: []float64{1}, A: mat.NewDense(1, 1, []float64{1})},
		"no system": {C: []float64{1}},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := miqp.SolveLP(be, p)
			require.ErrorIs(t, err, miqp.ErrDegenerateInput)
			assert.Nil(t, out)

			out, err = miqp.SolveMILP(be, p)
			require.ErrorIs(t, err, miqp.ErrDegenerateInput)
			assert.Nil(t, out)
		})
	}
	assert.Zero(t, be.calls, "degenerate input must not reach the backend")
}

func TestSolveMIQPBadShapes(t *testing.T) {
	be := &stubBackend{result: optimal(0, []float64{0, 0})}

	cases := map[string]miqp.Problem{
		"c shorter than Q": {
			Q: mat.NewSymDense(2, []float64{1, 0, 0, 1}),
			C: []float64{1, 2, 3},
		},
		"b shorter than A": {
			A: mat.NewDense(2, 2, []float64{1, 0, 0, 1}),
			B: []float64{1},
		},
		"Q wider than A": {
			Q: mat.NewSymDense(3, nil),
			A: mat.NewDense(1, 2, []float64{1, 1}),
			B: []float64{1},
		},
		"equality row out of range": {
			A:            mat.NewDense(1, 2, []float64{1, 1}),
			B:            []float64{1},
			EqualityRows: []int{1},
		},
		"binary variable out of range": {
			A:          mat.NewDense(1, 2, []float64{1, 1}),
			B:          []float64{1},
			BinaryVars: []int{2},
		},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := miqp.SolveMIQP(be, p)
			require.ErrorIs(t, err, miqp.ErrBadShape)
		})
	}
	assert.Zero(t, be.calls)
}

func TestSolveMIQPBuildsCanonicalModel(t *testing.T) {
	be := &stubBackend{result: optimal(1.5, []float64{0.5, 1})}

	p := miqp.Problem{
		Q:            mat.NewSymDense(2, []float64{2, 0, 0, 2}),
		C:            []float64{1, -1},
		A:            mat.NewDense(2, 2, []float64{1, 1, 1, -1}),
		B:            []float64{1, 0},
		EqualityRows: []int{0},
		BinaryVars:   []int{1},
	}
	_, err := miqp.SolveMIQP(be, p)
	require.NoError(t, err)
	require.Equal(t, 1, be.calls)

	m := be.models[0]
	assert.Equal(t, 2, m.NumVars)
	assert.Equal(t, []miqp.VarType{miqp.Continuous, miqp.Binary}, m.VarTypes)
	assert.Equal(t, []miqp.Sense{miqp.Equal, miqp.LessEq}, m.Senses)
	assert.Same(t, p.Q, m.Q)
	assert.Same(t, p.A, m.A)
	assert.Equal(t, p.B, m.B)
	assert.Equal(t, 1e-9, m.Config.FeasibilityTol)
	assert.Equal(t, 1e-9, m.Config.OptimalityTol)
	assert.False(t, m.Config.Presolve)
	assert.False(t, m.Config.PreferBasic, "binary model must not ask for a basic solution")
}

func TestSolveQPPrefersBasicAndDropsBinaries(t *testing.T) {
	be := &stubBackend{result: optimal(0, []float64{0})}

	p := miqp.Problem{
		Q:          mat.NewSymDense(1, []float64{2}),
		BinaryVars: []int{0},
	}
	_, err := miqp.SolveQP(be, p)
	require.NoError(t, err)

	m := be.models[0]
	assert.Equal(t, []miqp.VarType{miqp.Continuous}, m.VarTypes)
	assert.True(t, m.Config.PreferBasic)
}

func TestUnconstrainedLeavesOptionalFieldsNil(t *testing.T) {
	be := &stubBackend{result: optimal(-0.5, []float64{1})}

	out, err := miqp.SolveMIQP(be, miqp.Problem{
		Q: mat.NewSymDense(1, []float64{1}),
		C: []float64{-1},
	})
	require.NoError(t, err)
	assert.Nil(t, out.Slack)
	assert.Nil(t, out.ActiveSet)
	assert.Nil(t, out.Dual)
	assert.Equal(t, -0.5, out.Obj)
	assert.Equal(t, []float64{1}, out.Sol)
}

func TestDualExtractionGating(t *testing.T) {
	p := miqp.Problem{
		C: []float64{1, 1},
		A: mat.NewDense(1, 2, []float64{1, 1}),
		B: []float64{1},
	}
	res := &miqp.Result{
		Status:    miqp.StatusOptimal,
		Objective: 1,
		X:         []float64{1, 0},
		Slack:     []float64{0},
		Dual:      []float64{1},
	}

	t.Run("requested and continuous", func(t *testing.T) {
		be := &stubBackend{result: res}
		out, err := miqp.SolveMIQP(be, p)
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, out.Dual)
	})

	t.Run("not requested", func(t *testing.T) {
		be := &stubBackend{result: res}
		out, err := miqp.SolveMIQP(be, p, miqp.WithDuals(false))
		require.NoError(t, err)
		assert.Nil(t, out.Dual)
	})

	t.Run("binary variable present", func(t *testing.T) {
		be := &stubBackend{result: res}
		withBin := p
		withBin.BinaryVars = []int{0}
		out, err := miqp.SolveMIQP(be, withBin)
		require.NoError(t, err)
		assert.Nil(t, out.Dual, "mixed-integer duals must be withheld even when requested")
	})
}

// TestActiveSetThreshold pins the membership boundary: a residual just
// inside 1e-6 in magnitude (squared 1e-12) is binding, just outside is
// not.
func TestActiveSetThreshold(t *testing.T) {
	p := miqp.Problem{
		C: []float64{1},
		A: mat.NewDense(2, 1, []float64{1, 1}),
		B: []float64{9e-7, 1.1e-6},
	}
	be := &stubBackend{result: &miqp.Result{
		Status: miqp.StatusOptimal,
		X:      []float64{0},
		Slack:  []float64{9e-7, 1.1e-6},
	}}

	out, err := miqp.SolveLP(be, p)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, out.ActiveSet)
}

func TestSolveMIQPNotConverged(t *testing.T) {
	for _, status := range []miqp.SolveStatus{miqp.StatusFailed, miqp.SolveStatus(99)} {
		be := &stubBackend{result: &miqp.Result{Status: status}}
		out, err := miqp.SolveMIQP(be, miqp.Problem{
			C: []float64{1},
			A: mat.NewDense(2, 1, []float64{1, -1}),
			B: []float64{-1, -1},
		})
		require.ErrorIs(t, err, miqp.ErrNotConverged)
		assert.Nil(t, out)
		assert.Equal(t, 1, be.calls)
	}
}

func TestSolveMIQPBackendError(t *testing.T) {
	boom := errors.New("boom")
	be := &stubBackend{err: boom}
	_, err := miqp.SolveMIQP(be, miqp.Problem{Q: mat.NewSymDense(1, []float64{1})})
	require.ErrorIs(t, err, boom)
}

// TestMILPMatchesMIQPModel checks that the MILP adapter builds the exact
// model SolveMIQP builds for the same data with a nil Q.
func TestMILPMatchesMIQPModel(t *testing.T) {
	p := miqp.Problem{
		C:          []float64{-1, -1},
		A:          mat.NewDense(1, 2, []float64{1, 1}),
		B:          []float64{1},
		BinaryVars: []int{0},
	}
	res := optimal(-1, []float64{1, 0})
	res.Slack = []float64{0}

	milp := &stubBackend{result: res}
	_, err := miqp.SolveMILP(milp, p)
	require.NoError(t, err)

	miqpBE := &stubBackend{result: res}
	_, err = miqp.SolveMIQP(miqpBE, p)
	require.NoError(t, err)

	assert.Equal(t, miqpBE.models[0], milp.models[0])
}

func TestSolveOptionsReachConfig(t *testing.T) {
	be := &stubBackend{result: optimal(0, []float64{0})}
	_, err := miqp.SolveMIQP(be, miqp.Problem{Q: mat.NewSymDense(1, []float64{1})},
		miqp.WithVerbose(true),
		miqp.WithFeasibilityTol(1e-7),
		miqp.WithOptimalityTol(1e-6),
		miqp.WithTimeLimit(30),
	)
	require.NoError(t, err)

	cfg := be.models[0].Config
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 1e-7, cfg.FeasibilityTol)
	assert.Equal(t, 1e-6, cfg.OptimalityTol)
	assert.Equal(t, 30.0, cfg.TimeLimit)
}
