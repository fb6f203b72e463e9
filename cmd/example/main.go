package main

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/cacodcar/densesolve/highsbackend"
	"github.com/cacodcar/densesolve/miqp"
)

func main() {
	be := highsbackend.New()

	// Minimize x + y subject to x + y >= 1 and x, y >= 0,
	// written with <= rows: -x - y <= -1, -x <= 0, -y <= 0.
	lp := miqp.Problem{
		C: []float64{1, 1},
		A: mat.NewDense(3, 2, []float64{
			-1, -1,
			-1, 0,
			0, -1,
		}),
		B: []float64{-1, 0, 0},
	}
	out, err := miqp.SolveLP(be, lp)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("LP:   obj=%.3f sol=%v active=%v dual=%v\n", out.Obj, out.Sol, out.ActiveSet, out.Dual)

	// Minimize 1/2(x² + y²) − x − y subject to x + y = 1 with y binary.
	qp := miqp.Problem{
		Q:            mat.NewSymDense(2, []float64{1, 0, 0, 1}),
		C:            []float64{-1, -1},
		A:            mat.NewDense(1, 2, []float64{1, 1}),
		B:            []float64{1},
		EqualityRows: []int{0},
		BinaryVars:   []int{1},
	}
	out, err = miqp.SolveMIQP(be, qp)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("MIQP: obj=%.3f sol=%v\n", out.Obj, out.Sol)
}
