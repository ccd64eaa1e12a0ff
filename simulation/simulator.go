package simulation

import (
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru"
	"github.com/hscells/interleaving"
	"github.com/hscells/interleaving/eval"
	"github.com/hscells/trecresults"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/cheggaaa/pb.v1"
	"hash/fnv"
	"log"
	"time"
)

// Wins counts how often the ranker at Winner was preferred over the ranker at Loser.
type Wins map[interleaving.Preference]int

// Simulator runs interleaving experiments over the queries of a dataset.
type Simulator struct {
	dataset     *Dataset
	numPerQuery int
	topK        int
	rnd         *rand.Rand
	cacheSize   int
	progress    bool
	runName     string

	methods *lru.Cache
}

// NumPerQuery is the number of times each query is issued.
func NumPerQuery(n int) func(*Simulator) {
	return func(s *Simulator) {
		s.numPerQuery = n
	}
}

// TopK is the number of documents shown to the user.
func TopK(k int) func(*Simulator) {
	return func(s *Simulator) {
		s.topK = k
	}
}

// RandomSource is the source of randomness for users and methods.
func RandomSource(rnd *rand.Rand) func(*Simulator) {
	return func(s *Simulator) {
		s.rnd = rnd
	}
}

// MethodCacheSize is the number of interleaving methods kept between queries. Methods that pre-sample their rankings
// are expensive to create, so a query that is issued again reuses its method.
func MethodCacheSize(n int) func(*Simulator) {
	return func(s *Simulator) {
		s.cacheSize = n
	}
}

// Progress shows a progress bar while evaluating.
func Progress(progress bool) func(*Simulator) {
	return func(s *Simulator) {
		s.progress = progress
	}
}

// RunName names the runs of the rankers. A random name is used by default.
func RunName(name string) func(*Simulator) {
	return func(s *Simulator) {
		s.runName = name
	}
}

// NewSimulator creates a simulator over the dataset.
func NewSimulator(dataset *Dataset, options ...func(*Simulator)) (*Simulator, error) {
	s := &Simulator{
		dataset:     dataset,
		numPerQuery: 1,
		topK:        10,
		cacheSize:   1024,
		runName:     uuid.New().String(),
	}
	for _, option := range options {
		option(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	var err error
	s.methods, err = lru.New(s.cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "creating method cache")
	}
	return s, nil
}

// Evaluate issues every query NumPerQuery times. Each time the rankings of the rankers are interleaved by a method
// created with the factory, the user examines the result, and the preferences inferred from the clicks are counted.
func (s *Simulator) Evaluate(rankers []Ranker, user User, factory interleaving.Factory, options ...interleaving.Option) (Wins, error) {
	s.methods.Purge()
	wins := make(Wins)

	var bar *pb.ProgressBar
	if s.progress {
		bar = pb.StartNew(len(s.dataset.Queries) * s.numPerQuery)
		defer bar.Finish()
	}

	for i := 0; i < s.numPerQuery; i++ {
		for _, q := range s.dataset.Queries {
			lists := make([][]string, len(rankers))
			for j, r := range rankers {
				lists[j] = r.IDs(s.dataset.Documents[q])
			}
			m, err := s.method(lists, factory, options)
			if err != nil {
				return nil, errors.Wrapf(err, "query %s", q)
			}
			ranking := m.Interleave()
			clicks := user.Examine(s.rnd, ranking, s.dataset.Relevance(q))
			prefs, err := m.Evaluate(ranking, clicks)
			if err != nil {
				return nil, errors.Wrapf(err, "query %s", q)
			}
			for _, p := range prefs {
				wins[p]++
			}
			if bar != nil {
				bar.Increment()
			}
		}
	}
	return wins, nil
}

func (s *Simulator) method(lists [][]string, factory interleaving.Factory, options []interleaving.Option) (interleaving.Method, error) {
	key := listsHash(lists)
	if m, ok := s.methods.Get(key); ok {
		return m.(interleaving.Method), nil
	}
	opts := append([]interleaving.Option{interleaving.MaxLength(s.topK), interleaving.RandomSource(s.rnd)}, options...)
	m, err := factory(lists, opts...)
	if err != nil {
		return nil, err
	}
	s.methods.Add(key, m)
	return m, nil
}

func listsHash(lists [][]string) uint64 {
	h := fnv.New64a()
	for _, l := range lists {
		for _, doc := range l {
			h.Write([]byte(doc))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	return h.Sum64()
}

// Run is the trec run of the ranker over every query.
func (s *Simulator) Run(ranker Ranker) trecresults.ResultFile {
	rf := trecresults.ResultFile{Results: make(map[string]trecresults.ResultList, len(s.dataset.Queries))}
	for _, q := range s.dataset.Queries {
		ranked := ranker.Rank(s.dataset.Documents[q])
		l := make(trecresults.ResultList, len(ranked))
		for i, d := range ranked {
			l[i] = &trecresults.Result{
				Topic:     q,
				Iteration: "Q0",
				DocId:     d.ID,
				Rank:      int64(i + 1),
				Score:     ranker.Scorer(d.Features),
				RunName:   s.runName + "-" + ranker.Name,
			}
		}
		rf.Results[q] = l
	}
	return rf
}

// Qrels are the relevance judgements of the dataset.
func (s *Simulator) Qrels() trecresults.QrelsFile {
	qf := trecresults.QrelsFile{Qrels: make(map[string]trecresults.Qrels, len(s.dataset.Queries))}
	for _, q := range s.dataset.Queries {
		qrels := make(trecresults.Qrels, len(s.dataset.Documents[q]))
		for _, d := range s.dataset.Documents[q] {
			qrels[d.ID] = &trecresults.Qrel{
				Topic:     q,
				Iteration: "0",
				DocId:     d.ID,
				Score:     int64(d.Rel),
			}
		}
		qf.Qrels[q] = qrels
	}
	return qf
}

// Measure averages the measures of each ranker over the queries.
func (s *Simulator) Measure(rankers []Ranker, evaluators ...eval.Evaluator) map[int]map[string]float64 {
	qrels := s.Qrels()
	result := make(map[int]map[string]float64, len(rankers))
	for i, r := range rankers {
		values := make(map[string][]float64)
		for _, scores := range eval.EvaluateAll(evaluators, s.Run(r), qrels) {
			for name, v := range scores {
				values[name] = append(values[name], v)
			}
		}
		result[i] = make(map[string]float64, len(values))
		for name, v := range values {
			result[i][name] = stat.Mean(v, nil)
		}
	}
	return result
}

// NDCG is the mean nDCG of each ranker at the cutoff.
func (s *Simulator) NDCG(rankers []Ranker, cutoff int) map[int]float64 {
	e := eval.NDCG{K: cutoff}
	result := make(map[int]float64, len(rankers))
	for i, scores := range s.Measure(rankers, e) {
		result[i] = scores[e.Name()]
	}
	log.Printf("computed %s of %d rankers over %d queries", e.Name(), len(rankers), len(s.dataset.Queries))
	return result
}

// MeasureError is the fraction of ordered pairs of rankers on which the interleaving wins disagree with the
// ordering by a measure such as nDCG.
func MeasureError(wins Wins, measure map[int]float64) float64 {
	n := len(measure)
	if n < 2 {
		return 0
	}
	var errs float64
	for i := range measure {
		for j := range measure {
			better := measure[i] > measure[j]
			preferred := wins[interleaving.Preference{Winner: i, Loser: j}] > wins[interleaving.Preference{Winner: j, Loser: i}]
			if better != preferred {
				errs++
			}
		}
	}
	return errs / float64(n*(n-1))
}
