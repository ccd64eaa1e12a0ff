package simulation

import (
	"github.com/hscells/interleaving"
	"golang.org/x/exp/rand"
)

// User is a cascade click model. While examining a ranking from the top, the user clicks a document with the click
// probability of its relevance grade and then stops with the stop probability of that grade.
type User struct {
	ClickProbabilities []float64
	StopProbabilities  []float64
}

// NewUser creates a user for binary relevance that clicks every relevant document and never stops.
func NewUser() User {
	return User{
		ClickProbabilities: []float64{0, 1},
		StopProbabilities:  []float64{0, 0},
	}
}

// Examine returns the positions of the ranking the user clicks. Unjudged documents have grade 0; grades beyond the
// probabilities given are treated as the highest grade.
func (u User) Examine(rnd *rand.Rand, ranking interleaving.Ranking, rels map[string]int) []int {
	var clicks []int
	for i, doc := range ranking.Documents {
		g := rels[doc]
		if rnd.Float64() < probability(u.ClickProbabilities, g) {
			clicks = append(clicks, i)
		}
		if rnd.Float64() < probability(u.StopProbabilities, g) {
			break
		}
	}
	return clicks
}

func probability(p []float64, grade int) float64 {
	if len(p) == 0 {
		return 0
	}
	if grade < 0 {
		grade = 0
	}
	if grade >= len(p) {
		grade = len(p) - 1
	}
	return p[grade]
}
