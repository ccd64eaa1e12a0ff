package simulation_test

import (
	"github.com/hscells/interleaving"
	"github.com/hscells/interleaving/eval"
	"github.com/hscells/interleaving/simulation"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"strings"
	"testing"
)

const dataset = `1 qid:10 1:0.9 2:0.1 # a
1 qid:10 1:0.8 2:0.2 # b
0 qid:10 1:0.2 2:0.8 # c
0 qid:10 1:0.1 2:0.9 # d

2 qid:20 1:0.7 2:0.3
0 qid:20 1:0.3 2:0.5
1 qid:20 1:0.5 2:0.4
0 qid:20 1:0.1 2:0.6
`

func readDataset(t *testing.T) *simulation.Dataset {
	ds, err := simulation.ReadDataset(strings.NewReader(dataset))
	if err != nil {
		t.Fatal(err)
	}
	return ds
}

func TestParseDocument(t *testing.T) {
	d, err := simulation.ParseDocument("2 qid:7 1:0.5 25:3 # docid = GX000")
	if err != nil {
		t.Fatal(err)
	}
	if d.Rel != 2 || d.QID != "7" || d.Features[25] != 3 || d.Features[1] != 0.5 {
		t.Fatalf("unexpected document %+v", d)
	}
	if _, err := simulation.ParseDocument("x qid:7 1:0.5"); err == nil {
		t.Fatal("expected an error for a malformed grade")
	}
	if _, err := simulation.ParseDocument("1 7 1:0.5"); err == nil {
		t.Fatal("expected an error for a missing qid")
	}
}

func TestReadDataset(t *testing.T) {
	ds := readDataset(t)
	if len(ds.Queries) != 2 || ds.Queries[0] != "10" || ds.Queries[1] != "20" {
		t.Fatalf("unexpected queries %v", ds.Queries)
	}
	if len(ds.Documents["20"]) != 4 || ds.Documents["20"][3].ID != "20-3" {
		t.Fatalf("unexpected documents %v", ds.Documents["20"])
	}
	if ds.Relevance("20")["20-0"] != 2 {
		t.Fatalf("unexpected relevance %v", ds.Relevance("20"))
	}
}

func TestRanker(t *testing.T) {
	ds := readDataset(t)
	ids := simulation.FeatureRanker(2).IDs(ds.Documents["10"])
	if strings.Join(ids, ",") != "10-3,10-2,10-1,10-0" {
		t.Fatalf("unexpected ranking %v", ids)
	}
}

func TestUserExamine(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	r := interleaving.Ranking{Documents: []string{"a", "b", "c"}}
	rels := map[string]int{"b": 1, "c": 1}

	clicks := simulation.NewUser().Examine(rnd, r, rels)
	if len(clicks) != 2 || clicks[0] != 1 || clicks[1] != 2 {
		t.Fatalf("expected clicks on the relevant documents, got %v", clicks)
	}

	impatient := simulation.User{ClickProbabilities: []float64{0, 1}, StopProbabilities: []float64{0, 1}}
	clicks = impatient.Examine(rnd, r, rels)
	if len(clicks) != 1 || clicks[0] != 1 {
		t.Fatalf("expected the user to stop after the first click, got %v", clicks)
	}
}

func TestSimulatorEvaluate(t *testing.T) {
	s, err := simulation.NewSimulator(readDataset(t), simulation.NumPerQuery(5), simulation.TopK(4),
		simulation.RandomSource(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatal(err)
	}
	rankers := []simulation.Ranker{simulation.FeatureRanker(1), simulation.FeatureRanker(2)}

	factory, err := interleaving.MethodFactory("teamdraft")
	if err != nil {
		t.Fatal(err)
	}
	wins, err := s.Evaluate(rankers, simulation.NewUser(), factory)
	if err != nil {
		t.Fatal(err)
	}
	if wins[interleaving.Preference{Winner: 0, Loser: 1}] <= wins[interleaving.Preference{Winner: 1, Loser: 0}] {
		t.Fatalf("expected ranker 0 to win, got %v", wins)
	}

	ndcg := s.NDCG(rankers, 10)
	if !floats.EqualWithinAbs(ndcg[0], 1, 1e-12) || ndcg[1] >= ndcg[0] {
		t.Fatalf("unexpected nDCG %v", ndcg)
	}
	if e := simulation.MeasureError(wins, ndcg); e != 0 {
		t.Fatalf("expected no error, got %v", e)
	}
	if e := simulation.MeasureError(simulation.Wins{{Winner: 1, Loser: 0}: 1}, ndcg); e != 1 {
		t.Fatalf("expected every pair to disagree, got %v", e)
	}
}

func TestSimulatorMeasure(t *testing.T) {
	s, err := simulation.NewSimulator(readDataset(t), simulation.RunName("test"))
	if err != nil {
		t.Fatal(err)
	}
	rankers := []simulation.Ranker{simulation.FeatureRanker(1)}
	m := s.Measure(rankers, eval.PrecisionAtK{K: 2}, eval.AP)
	if m[0]["P@2"] != 1 || m[0]["AP"] != 1 {
		t.Fatalf("expected perfect precision, got %v", m[0])
	}
	run := s.Run(rankers[0])
	if run.Results["10"][0].RunName != "test-f1" {
		t.Fatalf("unexpected run name %s", run.Results["10"][0].RunName)
	}
}

func TestSimulatorMethodError(t *testing.T) {
	s, err := simulation.NewSimulator(readDataset(t))
	if err != nil {
		t.Fatal(err)
	}
	rankers := []simulation.Ranker{simulation.FeatureRanker(1), simulation.FeatureRanker(2), simulation.FeatureRanker(3)}
	factory, err := interleaving.MethodFactory("balanced")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Evaluate(rankers, simulation.NewUser(), factory); !interleaving.IsUsageError(err) {
		t.Fatalf("expected a usage error, got %v", err)
	}
}
