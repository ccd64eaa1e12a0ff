package eval

import (
	"fmt"
	"github.com/hscells/trecresults"
	"math"
	"sort"
)

// DCG is discounted cumulative gain with linear gain, cut off at K when K is positive.
type DCG struct{ K int }

// NDCG is DCG normalised by the DCG of the ideal ordering of the judged documents.
type NDCG struct{ K int }

var (
	// AP is average precision.
	AP = ap{}
)

type ap struct{}

func (e ap) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	R := NumRel.Score(results, qrels)
	if R == 0 {
		return 0
	}
	var sum float64
	for i, res := range *results {
		if relevant(qrels, res.DocId) {
			sum += PrecisionAtK{K: i + 1}.Score(results, qrels)
		}
	}
	return sum / R
}

func (e ap) Name() string {
	return "AP"
}

func (e DCG) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	var score float64
	for i, item := range *results {
		// Compute DCG at a cutoff.
		if e.K > 0 && i >= e.K {
			break
		}
		if qrel, ok := qrels[item.DocId]; ok {
			score += float64(qrel.Score) / math.Log2(float64(i)+2)
		}
	}
	return score
}

func (e DCG) Name() string {
	if e.K > 0 {
		return fmt.Sprintf("DCG@%d", e.K)
	}
	return "DCG"
}

func (e NDCG) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	// Compute ideal discounted cumulative gain.
	ideal := make(trecresults.ResultList, 0, len(qrels))
	for _, rel := range qrels {
		ideal = append(ideal, &trecresults.Result{
			Topic: rel.Topic,
			DocId: rel.DocId,
			Score: float64(rel.Score),
		})
	}
	sort.SliceStable(ideal, func(i, j int) bool {
		return ideal[i].Score > ideal[j].Score
	})

	idcg := DCG{K: e.K}.Score(&ideal, qrels)
	if idcg <= 0 {
		return 0
	}
	return DCG{K: e.K}.Score(results, qrels) / idcg
}

func (e NDCG) Name() string {
	if e.K > 0 {
		return fmt.Sprintf("nDCG@%d", e.K)
	}
	return "nDCG"
}

func scanCutoff(name, format string, k *int) bool {
	n, err := fmt.Sscanf(name, format, k)
	return err == nil && n == 1 && *k > 0 && fmt.Sprintf(format, *k) == name
}
