package eval

import (
	"fmt"
	"github.com/hscells/trecresults"
)

type recallEvaluator struct{}
type precisionEvaluator struct{}
type numRel struct{}

// PrecisionAtK is the fraction of the first K documents that are relevant.
type PrecisionAtK struct{ K int }

var (
	// RecallEvaluator calculates recall.
	RecallEvaluator = recallEvaluator{}
	// PrecisionEvaluator calculates precision.
	PrecisionEvaluator = precisionEvaluator{}
	// NumRel is the number of relevant documents.
	NumRel = numRel{}
)

func relevant(qrels trecresults.Qrels, doc string) bool {
	qrel, ok := qrels[doc]
	return ok && qrel.Score > RelevanceGrade
}

func numRelRet(results trecresults.ResultList, qrels trecresults.Qrels) float64 {
	n := 0.0
	for _, result := range results {
		if relevant(qrels, result.DocId) {
			n++
		}
	}
	return n
}

func (recallEvaluator) Name() string {
	return "Recall"
}

func (recallEvaluator) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	rel := NumRel.Score(results, qrels)
	if rel == 0 {
		return 0.0
	}
	return numRelRet(*results, qrels) / rel
}

func (precisionEvaluator) Name() string {
	return "Precision"
}

func (precisionEvaluator) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	if len(*results) == 0 {
		return 0.0
	}
	return numRelRet(*results, qrels) / float64(len(*results))
}

func (numRel) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	n := 0.0
	for _, qrel := range qrels {
		if qrel.Score > RelevanceGrade {
			n++
		}
	}
	return n
}

func (numRel) Name() string {
	return "NumRel"
}

func (p PrecisionAtK) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	if p.K <= 0 {
		return 0
	}
	l := *results
	if len(l) > p.K {
		l = l[:p.K]
	}
	return numRelRet(l, qrels) / float64(p.K)
}

func (p PrecisionAtK) Name() string {
	return fmt.Sprintf("P@%d", p.K)
}
