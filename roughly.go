package interleaving

import (
	"github.com/hscells/interleaving/linprog"
	"github.com/pkg/errors"
)

// RoughlyOptimized is roughly optimized multileaving [Manabe et al., SIGIR 2017]. It solves the same program as
// Optimized, but when no unbiased probabilities exist it allows a bias λ at each depth and minimises the weighted
// sum of the biases together with the sensitivity.
type RoughlyOptimized struct {
	*Optimized
	lambdas []float64
	loose   bool
}

// LooseSolution is the solution of the relaxed program.
type LooseSolution struct {
	linprog.Result
	// Probabilities of the rankings.
	Probabilities []float64
	// Lambdas are the biases allowed at each depth.
	Lambdas []float64
	Sigmas  []float64
}

// NewRoughlyOptimized creates a roughly optimized multileaving method. SampleNum is required. The strict program is
// tried first unless AlwaysLoose is set; BiasWeight weighs the biases of the relaxed program.
func NewRoughlyOptimized(lists [][]string, options ...Option) (*RoughlyOptimized, error) {
	o, err := newOptimized(lists, options)
	if err != nil {
		return nil, err
	}
	r := &RoughlyOptimized{Optimized: o}

	if !r.alwaysLoose {
		if res := ComputeProbabilities(len(lists), r.rankings, r.maxLength); res.Success {
			r.setDistribution(r.rankings, res.X)
			return r, nil
		}
	}

	s := ComputeLooseProbabilities(len(lists), r.rankings, r.maxLength, r.biasWeight)
	if !s.Success {
		return nil, errors.Wrapf(ErrOptimizationInfeasible, "relaxed program: %v", s.Err)
	}
	r.loose = true
	r.lambdas = s.Lambdas
	r.setDistribution(r.rankings, s.Probabilities)
	return r, nil
}

// Lambdas are the biases chosen at each depth, or nil when the strict program was solved.
func (r *RoughlyOptimized) Lambdas() []float64 {
	return r.lambdas
}

// Loose reports whether the probabilities come from the relaxed program.
func (r *RoughlyOptimized) Loose() bool {
	return r.loose
}

// ComputeLooseProbabilities solves the relaxed program over the rankings of k lists. For every depth and every
// ordered pair of lists the expected difference in cumulative credit is bounded by the λ of that depth; the
// objective is the expected sensitivity plus biasWeight times the sum of the λs.
func ComputeLooseProbabilities(k int, rankings []Ranking, maxLength int, biasWeight float64) LooseSolution {
	eta := len(rankings)
	sigmas := Sensitivity(k, rankings)

	c := make([]float64, eta+maxLength)
	copy(c, sigmas)
	for depth := 0; depth < maxLength; depth++ {
		c[eta+depth] = biasWeight
	}

	cum := make([][][]float64, eta)
	for rid, r := range rankings {
		cum[rid] = cumulativeCredits(k, r, maxLength)
	}

	var g [][]float64
	for depth := 0; depth < maxLength; depth++ {
		for a := 0; a < k; a++ {
			for b := 0; b < k; b++ {
				if a == b {
					continue
				}
				row := make([]float64, eta+maxLength)
				for rid := range rankings {
					row[rid] = cum[rid][depth][a] - cum[rid][depth][b]
				}
				row[eta+depth] = -1
				g = append(g, row)
			}
		}
	}

	ones := make([]float64, eta+maxLength)
	for rid := 0; rid < eta; rid++ {
		ones[rid] = 1
	}

	res := linprog.Solve(linprog.Problem{
		C: c,
		G: g,
		H: make([]float64, len(g)),
		A: [][]float64{ones},
		B: []float64{1},
	})
	s := LooseSolution{Result: res, Sigmas: sigmas}
	if res.Success {
		s.Probabilities = res.X[:eta]
		s.Lambdas = res.X[eta:]
	}
	return s
}
