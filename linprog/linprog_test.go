package linprog_test

import (
	"github.com/hscells/interleaving/linprog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"testing"
)

func TestSolveInequalities(t *testing.T) {
	res := linprog.Solve(linprog.Problem{
		C: []float64{-1, -1},
		G: [][]float64{{1, 2}, {3, 1}},
		H: []float64{4, 6},
	})
	if !res.Success {
		t.Fatal(res.Err)
	}
	if !floats.EqualApprox(res.X, []float64{8.0 / 5, 6.0 / 5}, 1e-9) {
		t.Fatalf("unexpected solution %v", res.X)
	}
	if !floats.EqualWithinAbs(res.Objective, -14.0/5, 1e-9) {
		t.Fatalf("unexpected objective %v", res.Objective)
	}
}

func TestSolveRedundantEqualities(t *testing.T) {
	res := linprog.Solve(linprog.Problem{
		C: []float64{1, 2},
		A: [][]float64{{1, 1}, {2, 2}, {0, 0}},
		B: []float64{1, 2, 0},
	})
	if !res.Success {
		t.Fatal(res.Err)
	}
	if !floats.EqualApprox(res.X, []float64{1, 0}, 1e-9) {
		t.Fatalf("unexpected solution %v", res.X)
	}
}

func TestSolveInconsistent(t *testing.T) {
	res := linprog.Solve(linprog.Problem{
		C: []float64{1, 1},
		A: [][]float64{{1, 1}, {2, 2}},
		B: []float64{1, 3},
	})
	if res.Success {
		t.Fatalf("expected failure, got %v", res.X)
	}
	if errors.Cause(res.Err) != linprog.ErrInconsistent {
		t.Fatalf("expected ErrInconsistent, got %v", res.Err)
	}
}

func TestSolveInfeasible(t *testing.T) {
	res := linprog.Solve(linprog.Problem{
		C: []float64{1, 1},
		A: [][]float64{{1, 1}},
		B: []float64{-1},
	})
	if res.Success {
		t.Fatalf("expected failure, got %v", res.X)
	}
}

func TestSolveUnusedVariable(t *testing.T) {
	res := linprog.Solve(linprog.Problem{
		C: []float64{2, 1},
		A: [][]float64{{0, 1}},
		B: []float64{1},
	})
	if !res.Success {
		t.Fatal(res.Err)
	}
	if !floats.EqualApprox(res.X, []float64{0, 1}, 1e-9) {
		t.Fatalf("unexpected solution %v", res.X)
	}

	res = linprog.Solve(linprog.Problem{
		C: []float64{-2, 1},
		A: [][]float64{{0, 1}},
		B: []float64{1},
	})
	if res.Success {
		t.Fatal("expected an unbounded problem")
	}
}

func TestSolveDimensionMismatch(t *testing.T) {
	res := linprog.Solve(linprog.Problem{
		C: []float64{1, 1},
		A: [][]float64{{1}},
		B: []float64{1},
	})
	if errors.Cause(res.Err) != linprog.ErrDimensionMismatch {
		t.Fatalf("expected ErrDimensionMismatch, got %v", res.Err)
	}
}
