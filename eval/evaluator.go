// Package eval scores ranked lists of documents against relevance judgements.
package eval

import "github.com/hscells/trecresults"

// RelevanceGrade is the grade above which a judged document is relevant.
var RelevanceGrade int64 = 0

// Evaluator is an interface for evaluating a retrieved list of documents.
type Evaluator interface {
	Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64
	Name() string
}

// Evaluate scores the results of a topic using the supplied evaluation measures.
func Evaluate(evaluators []Evaluator, results *trecresults.ResultList, qrels trecresults.QrelsFile, topic string) map[string]float64 {
	scores := make(map[string]float64, len(evaluators))
	for _, evaluator := range evaluators {
		scores[evaluator.Name()] = evaluator.Score(results, qrels.Qrels[topic])
	}
	return scores
}

// EvaluateAll scores the results of every topic in the result file.
func EvaluateAll(evaluators []Evaluator, results trecresults.ResultFile, qrels trecresults.QrelsFile) map[string]map[string]float64 {
	scores := make(map[string]map[string]float64, len(results.Results))
	for topic, l := range results.Results {
		l := l
		scores[topic] = Evaluate(evaluators, &l, qrels, topic)
	}
	return scores
}

// ByName returns the evaluator with the name; measures with a cutoff are written as, e.g. "nDCG@10".
func ByName(name string) (Evaluator, bool) {
	for _, e := range []Evaluator{AP, NDCG{}, DCG{}, PrecisionEvaluator, RecallEvaluator, NumRel} {
		if e.Name() == name {
			return e, true
		}
	}
	var k int
	switch {
	case scanCutoff(name, "nDCG@%d", &k):
		return NDCG{K: k}, true
	case scanCutoff(name, "DCG@%d", &k):
		return DCG{K: k}, true
	case scanCutoff(name, "P@%d", &k):
		return PrecisionAtK{K: k}, true
	}
	return nil, false
}
