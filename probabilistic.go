package interleaving

import (
	"github.com/pkg/errors"
	"math"
)

// Probabilistic is probabilistic interleaving [Hofmann et al., CIKM 2011] and multileaving [Schuth et al.,
// SIGIR 2015]. At each position a list is selected at random and a document is drawn from it by a softmax over
// ranks; the document is then removed from every list.
type Probabilistic struct {
	base
	softmaxes []*Softmax
}

// Allocation is one assignment of the positions of a ranking to the lists that may have contributed them.
type Allocation struct {
	// Assignment[i] is the list assumed to have contributed position i.
	Assignment []int
	// Clicks is the number of clicks each list receives under the assignment.
	Clicks []float64
	// Probability of the assignment.
	Probability float64
}

// ProbabilisticScore is the result of scoring clicks on a probabilistic ranking. Besides the scores it carries every
// assignment that was considered.
type ProbabilisticScore struct {
	Scores      Scores
	Allocations []Allocation
}

// NewProbabilistic creates a probabilistic interleaving method. The softmax decay is set with Tau (default 3) and
// whether lists are selected with replacement with Replace (default true).
func NewProbabilistic(lists [][]string, options ...Option) (*Probabilistic, error) {
	b, err := newBase(lists, options)
	if err != nil {
		return nil, err
	}
	p := &Probabilistic{base: b}
	p.softmaxes = make([]*Softmax, len(lists))
	for i, l := range lists {
		p.softmaxes[i] = NewSoftmax(p.tau, l)
	}
	p.merge = p.sample
	p.score = p.computeScores
	if p.sampleNum > 0 {
		p.sampleRankings()
	}
	return p, nil
}

func (p *Probabilistic) sample(maxLength int, lists [][]string) Ranking {
	result := Ranking{Lists: lists}
	active := make([]int, len(lists))
	for i := range active {
		active[i] = i
	}
	var available []int

	for result.Len() < maxLength && len(active) > 0 {
		if len(available) == 0 {
			available = append(available[:0], active...)
			p.rnd.Shuffle(len(available), func(i, j int) {
				available[i], available[j] = available[j], available[i]
			})
		}
		var selected int
		if p.replace {
			selected = available[p.rnd.Intn(len(available))]
		} else {
			selected = available[len(available)-1]
			available = available[:len(available)-1]
		}

		doc, ok := p.softmaxes[selected].Sample(p.rnd)
		if !ok {
			active = remove(active, selected)
			available = append(available[:0], active...)
			continue
		}
		result.Documents = append(result.Documents, doc)
		for _, i := range active {
			p.softmaxes[i].Delete(doc)
		}
	}

	for _, s := range p.softmaxes {
		s.Reset()
	}
	return result
}

func (p *Probabilistic) computeScores(ranking Ranking, clicks []int) (Scores, error) {
	s, err := p.allocations(ranking, clicks)
	if err != nil {
		return nil, err
	}
	return s.Scores, nil
}

// ComputeAllocations scores the clicks like ComputeScores and also returns the assignments that were considered.
func (p *Probabilistic) ComputeAllocations(ranking Ranking, clicks []int) (ProbabilisticScore, error) {
	c, err := clickSet(ranking, clicks)
	if err != nil {
		return ProbabilisticScore{}, err
	}
	return p.allocations(ranking, c)
}

func (p *Probabilistic) allocations(ranking Ranking, clicks []int) (ProbabilisticScore, error) {
	switch n := len(ranking.Lists); {
	case n == 2:
		return p.exactScores(ranking, clicks), nil
	case n > 2:
		return p.sampledScores(ranking, clicks), nil
	default:
		return ProbabilisticScore{}, errors.Wrapf(ErrUnsupportedListCount, "%d lists", n)
	}
}

// exactScores enumerates all 2^L ways the two lists could have produced the ranking. The probability of each
// assignment is accumulated for the list that receives more clicks under it.
func (p *Probabilistic) exactScores(ranking Ranking, clicks []int) ProbabilisticScore {
	clicked := clickedDocuments(ranking, clicks)
	r := [2]*Softmax{NewSoftmax(p.tau, ranking.Lists[0]), NewSoftmax(p.tau, ranking.Lists[1])}
	o := ProbabilisticScore{Scores: Scores{0: 0, 1: 0}}

	n := ranking.Len()
	for i := 0; i < 1<<uint(n); i++ {
		r[0].Reset()
		r[1].Reset()

		a := make([]int, n)
		c := make([]float64, 2)
		prob := 1.0
		for pos, doc := range ranking.Documents {
			j := (i >> uint(pos)) & 1
			a[pos] = j
			if clicked[doc] {
				c[j]++
			}
			prob *= r[j].Delete(doc)
			r[1-j].Delete(doc)
		}

		switch {
		case c[0] > c[1]:
			o.Scores[0] += prob
		case c[1] > c[0]:
			o.Scores[1] += prob
		}
		o.Allocations = append(o.Allocations, Allocation{Assignment: a, Clicks: c, Probability: prob})
	}
	return o
}

type history struct {
	clicks     []float64
	logProb    float64
	assignment []int
}

// sampledScores estimates the expected clicks of each list by sampling assignment histories. A continuation of a
// history is kept with probability n^(1/L)/K, which keeps roughly n histories for a ranking of length L over K
// lists.
func (p *Probabilistic) sampledScores(ranking Ranking, clicks []int) ProbabilisticScore {
	k := len(ranking.Lists)
	r := make([]*Softmax, k)
	for j, l := range ranking.Lists {
		r[j] = NewSoftmax(p.tau, l)
	}
	remaining := clickedDocuments(ranking, clicks)
	threshold := math.Pow(p.approximationSize, 1/float64(ranking.Len())) / float64(k)

	histories := []history{{clicks: make([]float64, k)}}
	probs := make([]float64, k)
	for _, doc := range ranking.Documents {
		if len(remaining) == 0 {
			break
		}
		isClicked := remaining[doc]
		delete(remaining, doc)

		var used []int
		for j := range r {
			probs[j] = r[j].Delete(doc)
			if probs[j] > 0 {
				used = append(used, j)
			}
		}
		if len(used) == 0 {
			continue
		}

		var extended []history
		for _, h := range histories {
			for _, j := range used {
				if p.rnd.Float64() <= threshold {
					extended = append(extended, h.extend(j, probs[j], isClicked))
				}
			}
		}
		if len(extended) == 0 {
			// Never lose every history; keep all continuations of this position instead.
			for _, h := range histories {
				for _, j := range used {
					extended = append(extended, h.extend(j, probs[j], isClicked))
				}
			}
		}
		histories = extended
	}

	// Normalise with log-sum-exp.
	maxLog := math.Inf(-1)
	for _, h := range histories {
		if h.logProb > maxLog {
			maxLog = h.logProb
		}
	}
	weights := make([]float64, len(histories))
	var sum float64
	for i, h := range histories {
		weights[i] = math.Exp(h.logProb - maxLog)
		sum += weights[i]
	}

	o := ProbabilisticScore{Scores: make(Scores, k)}
	expected := make([]float64, k)
	for i, h := range histories {
		w := weights[i] / sum
		for j := range expected {
			expected[j] += h.clicks[j] * w
		}
		o.Allocations = append(o.Allocations, Allocation{Assignment: h.assignment, Clicks: h.clicks, Probability: w})
	}
	for j, v := range expected {
		o.Scores[j] = v
	}
	return o
}

func (h history) extend(list int, prob float64, clicked bool) history {
	c := make([]float64, len(h.clicks))
	copy(c, h.clicks)
	if clicked {
		c[list]++
	}
	a := make([]int, len(h.assignment), len(h.assignment)+1)
	copy(a, h.assignment)
	return history{
		clicks:     c,
		logProb:    h.logProb + math.Log(prob),
		assignment: append(a, list),
	}
}

func clickedDocuments(ranking Ranking, clicks []int) map[string]bool {
	clicked := make(map[string]bool, len(clicks))
	for _, c := range clicks {
		clicked[ranking.At(c)] = true
	}
	return clicked
}

func remove(l []int, v int) []int {
	result := make([]int, 0, len(l))
	for _, x := range l {
		if x != v {
			result = append(result, x)
		}
	}
	return result
}
