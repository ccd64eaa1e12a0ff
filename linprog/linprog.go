// Package linprog solves small linear programs of the form
//
//	minimize    cᵀx
//	subject to  Gx <= h
//	            Ax  = b
//	            x  >= 0
//
// The problem is converted to standard form and handed to the simplex solver of gonum.
package linprog

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
	"math"
)

const (
	// DependenceTolerance is the tolerance under which a reduced constraint row is considered zero.
	DependenceTolerance = 1e-9
	// SimplexTolerance is passed to the simplex solver.
	SimplexTolerance = 1e-10
)

var (
	// ErrDimensionMismatch is returned when the constraint matrices do not agree with the objective.
	ErrDimensionMismatch = errors.New("constraint dimensions do not match the objective")
	// ErrInconsistent is returned when the equality constraints contradict each other.
	ErrInconsistent = errors.New("equality constraints are inconsistent")
)

// Problem is a linear program. G/H and A/B may be empty.
type Problem struct {
	C []float64
	G [][]float64
	H []float64
	A [][]float64
	B []float64
}

// Result is the outcome of solving a Problem. When Success is false, Err describes why and X is nil.
type Result struct {
	Success   bool
	X         []float64
	Objective float64
	Err       error
}

func failed(err error) Result {
	return Result{Err: err}
}

// Solve minimises the problem. It never panics on infeasible or unbounded problems; these are reported in the
// result instead.
func Solve(p Problem) Result {
	n := len(p.C)
	if len(p.G) != len(p.H) || len(p.A) != len(p.B) {
		return failed(ErrDimensionMismatch)
	}
	for _, row := range append(append([][]float64{}, p.G...), p.A...) {
		if len(row) != n {
			return failed(errors.Wrapf(ErrDimensionMismatch, "row of length %d for %d variables", len(row), n))
		}
	}

	// Standard form: one slack per inequality, every rhs non-negative.
	cols := n + len(p.G)
	var rows [][]float64
	var rhs []float64
	for i, g := range p.G {
		row := make([]float64, cols)
		copy(row, g)
		row[n+i] = 1
		rows = append(rows, row)
		rhs = append(rhs, p.H[i])
	}
	for i, a := range p.A {
		row := make([]float64, cols)
		copy(row, a)
		rows = append(rows, row)
		rhs = append(rhs, p.B[i])
	}
	for i := range rows {
		if rhs[i] < 0 {
			floats.Scale(-1, rows[i])
			rhs[i] = -rhs[i]
		}
	}
	c := make([]float64, cols)
	copy(c, p.C)

	rows, rhs, err := independentRows(rows, rhs)
	if err != nil {
		return failed(err)
	}

	// Columns that appear in no constraint are fixed at zero; they only lower the objective without bound when
	// their cost is negative.
	var used []int
	for j := 0; j < cols; j++ {
		zero := true
		for _, row := range rows {
			if row[j] != 0 {
				zero = false
				break
			}
		}
		if !zero {
			used = append(used, j)
			continue
		}
		if c[j] < 0 {
			return failed(lp.ErrUnbounded)
		}
	}

	x := make([]float64, cols)
	if len(rows) > 0 {
		data := make([]float64, 0, len(rows)*len(used))
		for _, row := range rows {
			for _, j := range used {
				data = append(data, row[j])
			}
		}
		sc := make([]float64, len(used))
		for k, j := range used {
			sc[k] = c[j]
		}
		_, sx, err := lp.Simplex(sc, mat.NewDense(len(rows), len(used), data), rhs, SimplexTolerance, nil)
		if err != nil {
			return failed(err)
		}
		for k, j := range used {
			x[j] = sx[k]
		}
	}

	result := x[:n]
	for i, v := range result {
		if v < 0 && v > -DependenceTolerance {
			result[i] = 0
		}
	}
	return Result{
		Success:   true,
		X:         result,
		Objective: floats.Dot(p.C, result),
	}
}

// independentRows removes the rows that are linear combinations of earlier rows. A dependent row whose right hand
// side does not follow from the earlier rows makes the system inconsistent.
func independentRows(rows [][]float64, rhs []float64) ([][]float64, []float64, error) {
	type pivotRow struct {
		row   []float64
		rhs   float64
		pivot int
	}
	var basis []pivotRow
	var keptRows [][]float64
	var keptRHS []float64

	for i, row := range rows {
		r := make([]float64, len(row))
		copy(r, row)
		v := rhs[i]
		for _, b := range basis {
			f := r[b.pivot]
			if f == 0 {
				continue
			}
			floats.AddScaled(r, -f, b.row)
			v -= f * b.rhs
		}

		scale := math.Max(1, floats.Norm(row, math.Inf(1)))
		pivot := -1
		if len(r) > 0 {
			pivot = floats.MaxIdx(absolute(r))
		}
		if pivot < 0 || math.Abs(r[pivot]) <= DependenceTolerance*scale {
			if math.Abs(v) > DependenceTolerance*math.Max(1, math.Abs(rhs[i])) {
				return nil, nil, errors.Wrapf(ErrInconsistent, "row %d", i)
			}
			continue
		}
		f := r[pivot]
		floats.Scale(1/f, r)
		basis = append(basis, pivotRow{row: r, rhs: v / f, pivot: pivot})
		keptRows = append(keptRows, row)
		keptRHS = append(keptRHS, rhs[i])
	}
	return keptRows, keptRHS, nil
}

func absolute(x []float64) []float64 {
	a := make([]float64, len(x))
	for i, v := range x {
		a[i] = math.Abs(v)
	}
	return a
}
