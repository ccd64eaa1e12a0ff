package eval_test

import (
	"github.com/hscells/interleaving/eval"
	"github.com/hscells/trecresults"
	"gonum.org/v1/gonum/floats"
	"math"
	"testing"
)

func results(docs ...string) *trecresults.ResultList {
	l := make(trecresults.ResultList, len(docs))
	for i, doc := range docs {
		l[i] = &trecresults.Result{Topic: "1", Iteration: "Q0", DocId: doc, Rank: int64(i + 1)}
	}
	return &l
}

func qrels(grades map[string]int64) trecresults.Qrels {
	q := make(trecresults.Qrels, len(grades))
	for doc, grade := range grades {
		q[doc] = &trecresults.Qrel{Topic: "1", Iteration: "0", DocId: doc, Score: grade}
	}
	return q
}

func TestNDCG(t *testing.T) {
	q := qrels(map[string]int64{"a": 2, "b": 1, "c": 0})

	if s := (eval.NDCG{K: 10}).Score(results("a", "b", "c"), q); !floats.EqualWithinAbs(s, 1, 1e-12) {
		t.Fatalf("the ideal ordering should score 1, got %v", s)
	}

	dcg := 1 + 2/math.Log2(3)
	ideal := 2 + 1/math.Log2(3)
	if s := (eval.NDCG{K: 10}).Score(results("b", "a"), q); !floats.EqualWithinAbs(s, dcg/ideal, 1e-12) {
		t.Fatalf("expected %v, got %v", dcg/ideal, s)
	}

	if s := (eval.NDCG{K: 1}).Score(results("b", "a"), q); !floats.EqualWithinAbs(s, 0.5, 1e-12) {
		t.Fatalf("expected 0.5 at a cutoff of 1, got %v", s)
	}

	if s := (eval.NDCG{}).Score(results("a"), qrels(map[string]int64{"a": 0})); s != 0 {
		t.Fatalf("without relevant documents nDCG is 0, got %v", s)
	}
}

func TestAP(t *testing.T) {
	q := qrels(map[string]int64{"a": 1, "c": 1})
	expected := (1 + 2.0/3) / 2
	if s := eval.AP.Score(results("a", "b", "c"), q); !floats.EqualWithinAbs(s, expected, 1e-12) {
		t.Fatalf("expected %v, got %v", expected, s)
	}
	if s := (eval.PrecisionAtK{K: 2}).Score(results("a", "b", "c"), q); s != 0.5 {
		t.Fatalf("expected 0.5, got %v", s)
	}
	if s := eval.RecallEvaluator.Score(results("a", "b"), q); s != 0.5 {
		t.Fatalf("expected 0.5, got %v", s)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"nDCG@10", "DCG@5", "P@3", "AP", "nDCG", "Recall"} {
		e, ok := eval.ByName(name)
		if !ok {
			t.Fatalf("%s not found", name)
		}
		if e.Name() != name {
			t.Fatalf("expected %s, got %s", name, e.Name())
		}
	}
	if _, ok := eval.ByName("ERR@10"); ok {
		t.Fatal("unexpected measure")
	}
}

func TestEvaluateAll(t *testing.T) {
	r := trecresults.ResultFile{Results: map[string]trecresults.ResultList{"1": *results("a", "b")}}
	q := trecresults.QrelsFile{Qrels: map[string]trecresults.Qrels{"1": qrels(map[string]int64{"a": 1})}}
	scores := eval.EvaluateAll([]eval.Evaluator{eval.NDCG{K: 10}, eval.PrecisionAtK{K: 1}}, r, q)
	if scores["1"]["nDCG@10"] != 1 || scores["1"]["P@1"] != 1 {
		t.Fatalf("unexpected scores %v", scores)
	}
}
