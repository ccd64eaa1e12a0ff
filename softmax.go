package interleaving

import (
	"golang.org/x/exp/rand"
	"math"
)

// Softmax samples documents from a ranking without replacement. The document at 1-based rank r is drawn with
// probability proportional to 1/r^tau among the documents that have not been deleted.
//
// Deleting a document only marks its positions as dead, so Reset restores the original state without allocating.
type Softmax struct {
	tau         float64
	ranking     []string
	weights     []float64
	positions   map[string][]int
	live        []bool
	numLive     int
	denominator float64
	original    float64
}

// NewSoftmax creates a sampler over the ranking.
func NewSoftmax(tau float64, ranking []string) *Softmax {
	s := &Softmax{
		tau:       tau,
		ranking:   ranking,
		weights:   make([]float64, len(ranking)),
		positions: make(map[string][]int, len(ranking)),
		live:      make([]bool, len(ranking)),
	}
	for i, doc := range ranking {
		s.weights[i] = 1.0 / math.Pow(float64(i+1), tau)
		s.positions[doc] = append(s.positions[doc], i)
		s.original += s.weights[i]
	}
	s.Reset()
	return s
}

// Has reports whether the document appears in the ranking, deleted or not.
func (s *Softmax) Has(doc string) bool {
	_, ok := s.positions[doc]
	return ok
}

// Denominator is the sum of the weights of the live positions.
func (s *Softmax) Denominator() float64 {
	return s.denominator
}

// Delete removes every live position of the document and returns the probability the document had of being sampled
// immediately before it was removed. The probability is 0 when the document is not live.
func (s *Softmax) Delete(doc string) float64 {
	old := s.denominator
	var mass float64
	for _, i := range s.positions[doc] {
		if s.live[i] {
			s.live[i] = false
			s.numLive--
			mass += s.weights[i]
		}
	}
	if mass == 0 {
		return 0
	}
	s.denominator -= mass
	if s.numLive == 0 || s.denominator < 0 {
		s.denominator = 0
	}
	if old <= 0 {
		return 0
	}
	return mass / old
}

// Sample draws a live document. It returns false when no documents are left.
func (s *Softmax) Sample(rnd *rand.Rand) (string, bool) {
	if s.numLive == 0 || s.denominator <= 0 {
		return "", false
	}
	p := rnd.Float64() * s.denominator
	var cum float64
	last := -1
	for i, w := range s.weights {
		if !s.live[i] {
			continue
		}
		cum += w
		last = i
		if cum > p {
			return s.ranking[i], true
		}
	}
	// Rounding can leave p just above the cumulative sum.
	return s.ranking[last], true
}

// Reset makes every position live again.
func (s *Softmax) Reset() {
	for i := range s.live {
		s.live[i] = true
	}
	s.numLive = len(s.live)
	s.denominator = s.original
}
