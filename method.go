package interleaving

import (
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/xtgo/set"
	"gonum.org/v1/gonum/stat/distuv"
	"io"
	"os"
	"sort"
	"strconv"
)

// Scores maps the index of a source list to the score it received for a set of clicks.
type Scores map[int]float64

// Preference indicates that the ranker at index Winner won against the ranker at index Loser.
type Preference struct {
	Winner int
	Loser  int
}

// RankingProbability is a sampled ranking and the probability it is shown with.
type RankingProbability struct {
	Ranking     Ranking
	Probability float64
}

// Method is an interleaving (or multileaving) method. A method is created from the lists of document IDs to compare
// and is then used to produce interleaved rankings and to score clicks on them.
//
// A method is not safe for concurrent use; each method owns its random source and sampler state.
type Method interface {
	// Interleave returns an interleaved ranking.
	Interleave() Ranking
	// RankingDistribution returns the sampled rankings and their probabilities, or nil if the method was not
	// created with SampleNum.
	RankingDistribution() []RankingProbability
	// DumpRankings writes the sampled rankings as JSON keyed by the hash of each ranking.
	DumpRankings(w io.Writer) error
	// ComputeScores scores each source list for clicks on positions of the ranking.
	ComputeScores(ranking Ranking, clicks []int) (Scores, error)
	// Evaluate returns every pair (i, j) where source i scored higher than source j.
	Evaluate(ranking Ranking, clicks []int) ([]Preference, error)
	// Lists are the source lists.
	Lists() [][]string
	// MaxLength is the maximum length of an interleaved ranking.
	MaxLength() int
}

// mergeFunc merges the lists into a ranking of at most maxLength documents.
type mergeFunc func(maxLength int, lists [][]string) Ranking

// scoreFunc computes the score of each source for clicks on a ranking.
type scoreFunc func(ranking Ranking, clicks []int) (Scores, error)

// base contains the behaviour shared by all methods. Methods supply how lists are merged and how clicks are scored.
type base struct {
	config
	lists [][]string
	merge mergeFunc
	score scoreFunc

	rankings      []Ranking
	probabilities []float64
	categorical   distuv.Categorical
}

func newBase(lists [][]string, options []Option) (base, error) {
	if len(lists) == 0 {
		return base{}, ErrNoLists
	}
	return base{
		config: newConfig(lists, options),
		lists:  lists,
	}, nil
}

// sampleRankings merges the lists sampleNum times, each merge contributing 1/sampleNum to the probability of the
// resulting ranking.
func (b *base) sampleRankings() {
	d := newDistribution()
	for i := 0; i < b.sampleNum; i++ {
		d.add(b.merge(b.maxLength, b.lists), 1.0/float64(b.sampleNum))
	}
	b.setDistribution(d.rankings, d.probabilities)
}

// setDistribution replaces the sampled rankings and their probabilities. Probabilities are clipped to [0, 1].
func (b *base) setDistribution(rankings []Ranking, probabilities []float64) {
	weights := make([]float64, len(probabilities))
	var sum float64
	for i, p := range probabilities {
		switch {
		case p < 0:
			p = 0
		case p > 1:
			p = 1
		}
		weights[i] = p
		sum += p
	}
	if sum <= 0 {
		for i := range weights {
			weights[i] = 1
		}
	}
	b.rankings = rankings
	b.probabilities = probabilities
	b.categorical = distuv.NewCategorical(weights, b.rnd)
}

func (b *base) sampled() bool {
	return b.rankings != nil
}

func (b *base) Interleave() Ranking {
	if b.sampled() {
		return b.rankings[int(b.categorical.Rand())]
	}
	return b.merge(b.maxLength, b.lists)
}

func (b *base) RankingDistribution() []RankingProbability {
	if !b.sampled() {
		return nil
	}
	d := make([]RankingProbability, len(b.rankings))
	for i := range b.rankings {
		d[i] = RankingProbability{
			Ranking:     b.rankings[i],
			Probability: b.probabilities[i],
		}
	}
	return d
}

func (b *base) ComputeScores(ranking Ranking, clicks []int) (Scores, error) {
	c, err := clickSet(ranking, clicks)
	if err != nil {
		return nil, err
	}
	return b.score(ranking, c)
}

func (b *base) Evaluate(ranking Ranking, clicks []int) ([]Preference, error) {
	scores, err := b.ComputeScores(ranking, clicks)
	if err != nil {
		return nil, err
	}
	return PreferencesFromScores(scores, len(b.lists)), nil
}

func (b *base) Lists() [][]string {
	return b.lists
}

func (b *base) MaxLength() int {
	return b.maxLength
}

type dumpEntry struct {
	Probability float64                `json:"probability"`
	Ranking     map[string]interface{} `json:"ranking"`
}

func (b *base) DumpRankings(w io.Writer) error {
	if !b.sampled() {
		return ErrNotSampled
	}
	result := make(map[string]dumpEntry, len(b.rankings))
	for i, r := range b.rankings {
		result[strconv.FormatUint(r.Hash(), 10)] = dumpEntry{
			Probability: b.probabilities[i],
			Ranking:     r.Dump(),
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(result)
}

// WriteRankings dumps the sampled rankings of the method into a file.
func WriteRankings(m Method, path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	return errors.Wrapf(m.DumpRankings(f), "dumping rankings to %s", path)
}

// PreferencesFromScores compares the scores of the n sources pairwise. Ties produce no preference.
func PreferencesFromScores(scores Scores, n int) []Preference {
	var prefs []Preference
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch {
			case scores[i] > scores[j]:
				prefs = append(prefs, Preference{Winner: i, Loser: j})
			case scores[i] < scores[j]:
				prefs = append(prefs, Preference{Winner: j, Loser: i})
			}
		}
	}
	return prefs
}

// distribution accumulates probability mass for distinct rankings in the order they are first seen.
type distribution struct {
	seen          map[string]int
	rankings      []Ranking
	probabilities []float64
}

func newDistribution() *distribution {
	return &distribution{seen: make(map[string]int)}
}

// add adds mass to the ranking and reports whether the ranking had not been seen before.
func (d *distribution) add(r Ranking, mass float64) bool {
	k := r.Key()
	if i, ok := d.seen[k]; ok {
		d.probabilities[i] += mass
		return false
	}
	d.seen[k] = len(d.rankings)
	d.rankings = append(d.rankings, r)
	d.probabilities = append(d.probabilities, mass)
	return true
}

func (d *distribution) len() int {
	return len(d.rankings)
}

// clickSet sorts the click positions and removes duplicates. Every position must be inside the ranking.
func clickSet(r Ranking, clicks []int) ([]int, error) {
	c := make(sort.IntSlice, len(clicks))
	copy(c, clicks)
	for _, i := range c {
		if i < 0 || i >= r.Len() {
			return nil, errors.Wrapf(ErrClickOutOfRange, "position %d in ranking of length %d", i, r.Len())
		}
	}
	sort.Sort(c)
	return c[:set.Uniq(c)], nil
}
