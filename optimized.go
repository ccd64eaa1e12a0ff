package interleaving

import (
	"github.com/hscells/interleaving/linprog"
	"github.com/pkg/errors"
)

// Optimized is optimized multileaving [Radlinski and Craswell, WSDM 2013; Schuth et al., CIKM 2014]. A pool of
// distinct rankings is sampled with the prefix constraint, every document is credited to each list by its rank, and
// the probability of showing each ranking is chosen by a linear program so that no list is favoured at any depth
// while the variance of the outcome is minimal.
type Optimized struct {
	base
	sigmas []float64
}

// NewOptimized creates an optimized multileaving method. SampleNum is required. It returns
// ErrOptimizationInfeasible when no probabilities over the sampled rankings are unbiased.
func NewOptimized(lists [][]string, options ...Option) (*Optimized, error) {
	o, err := newOptimized(lists, options)
	if err != nil {
		return nil, err
	}
	res := ComputeProbabilities(len(lists), o.rankings, o.maxLength)
	if !res.Success {
		return nil, errors.Wrapf(ErrOptimizationInfeasible, "%d rankings: %v", len(o.rankings), res.Err)
	}
	o.setDistribution(o.rankings, res.X)
	return o, nil
}

// newOptimized samples the pool of rankings without assigning probabilities to them.
func newOptimized(lists [][]string, options []Option) (*Optimized, error) {
	b, err := newBase(lists, options)
	if err != nil {
		return nil, err
	}
	if b.sampleNum <= 0 {
		return nil, ErrSampleNumRequired
	}
	o := &Optimized{base: b}
	o.merge = o.sample
	o.score = o.computeScores

	d := newDistribution()
	for attempts := 0; d.len() < o.sampleNum && attempts < o.maxAttempts; attempts++ {
		d.add(o.merge(o.maxLength, o.lists), 1.0/float64(o.sampleNum))
	}
	o.rankings = d.rankings
	o.probabilities = d.probabilities
	o.sigmas = Sensitivity(len(lists), o.rankings)
	return o, nil
}

// Sigmas are the sensitivities of the sampled rankings.
func (o *Optimized) Sigmas() []float64 {
	return o.sigmas
}

// sample merges the lists with the prefix constraint: a random list contributes its highest ranked document that is
// not yet in the ranking, and lists with nothing left to contribute drop out.
func (o *Optimized) sample(maxLength int, lists [][]string) Ranking {
	result := NewCreditRanking(len(lists))
	teams := make([]int, len(lists))
	for i := range teams {
		teams[i] = i
	}
	for result.Len() < maxLength && len(teams) > 0 {
		selected := teams[o.rnd.Intn(len(teams))]
		doc, ok := firstMissing(lists[selected], result)
		if !ok {
			teams = remove(teams, selected)
			continue
		}
		result.Documents = append(result.Documents, doc)
	}

	for _, doc := range result.Documents {
		for team, l := range lists {
			rank := index(l, doc) + 1
			if rank == 0 {
				rank = len(l) + 1
			}
			result.Credits[team][doc] = o.credit(rank)
		}
	}
	return result
}

func firstMissing(l []string, r Ranking) (string, bool) {
	for _, doc := range l {
		if !r.Contains(doc) {
			return doc, true
		}
	}
	return "", false
}

func (o *Optimized) computeScores(ranking Ranking, clicks []int) (Scores, error) {
	return OptimizedScores(ranking, clicks), nil
}

// OptimizedScores sums, for each list, the credits of the clicked documents.
func OptimizedScores(ranking Ranking, clicks []int) Scores {
	scores := make(Scores, len(ranking.Credits))
	for team, credits := range ranking.Credits {
		scores[team] = 0
		for _, c := range clicks {
			scores[team] += credits[ranking.At(c)]
		}
	}
	return scores
}

// cumulativeCredits returns, for each depth below maxLength, the credit each of the k lists has accumulated in the
// ranking. Depths past the end of a short ranking keep the total of the whole ranking.
func cumulativeCredits(k int, ranking Ranking, maxLength int) [][]float64 {
	cum := make([][]float64, maxLength)
	running := make([]float64, k)
	for depth := range cum {
		if depth < ranking.Len() {
			doc := ranking.At(depth)
			for team := 0; team < k; team++ {
				running[team] += ranking.Credits[team][doc]
			}
		}
		cum[depth] = make([]float64, k)
		copy(cum[depth], running)
	}
	return cum
}

// UnbiasednessConstraints builds the rows of the constraint matrix of the strict program. Row pair*maxLength+depth
// holds, for every ranking, the cumulative credit of list pair minus that of list pair+1 at that depth.
func UnbiasednessConstraints(k int, rankings []Ranking, maxLength int) [][]float64 {
	if k < 2 {
		return nil
	}
	rows := make([][]float64, (k-1)*maxLength)
	for i := range rows {
		rows[i] = make([]float64, len(rankings))
	}
	for rid, r := range rankings {
		cum := cumulativeCredits(k, r, maxLength)
		for pair := 0; pair < k-1; pair++ {
			for depth := 0; depth < maxLength; depth++ {
				rows[pair*maxLength+depth][rid] = cum[depth][pair] - cum[depth][pair+1]
			}
		}
	}
	return rows
}

// Sensitivity is the expected variance of the outcome of each ranking when a user clicks position i with
// probability 1/(i+1).
func Sensitivity(k int, rankings []Ranking) []float64 {
	sigmas := make([]float64, len(rankings))
	for rid, r := range rankings {
		s := make([]float64, k)
		var mu float64
		for idx, doc := range r.Documents {
			p := 1.0 / float64(idx+1)
			for team := 0; team < k; team++ {
				s[team] += p * r.Credits[team][doc]
			}
		}
		for _, v := range s {
			mu += v
		}
		mu /= float64(k)
		for _, v := range s {
			sigmas[rid] += (v - mu) * (v - mu)
		}
	}
	return sigmas
}

// ComputeProbabilities solves the strict program: minimise the expected sensitivity subject to the probabilities
// summing to one and every depth being unbiased.
func ComputeProbabilities(k int, rankings []Ranking, maxLength int) linprog.Result {
	ones := make([]float64, len(rankings))
	for i := range ones {
		ones[i] = 1
	}
	u := UnbiasednessConstraints(k, rankings, maxLength)
	a := append([][]float64{ones}, u...)
	b := make([]float64, len(a))
	b[0] = 1
	return linprog.Solve(linprog.Problem{
		C: Sensitivity(k, rankings),
		A: a,
		B: b,
	})
}
