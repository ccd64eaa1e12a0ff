package simulation

import (
	"sort"
	"strconv"
)

// Scorer scores the features of a document.
type Scorer func(features map[int]float64) float64

// Ranker orders documents by a score.
type Ranker struct {
	Name   string
	Scorer Scorer
}

// FeatureRanker ranks documents by a single feature.
func FeatureRanker(feature int) Ranker {
	return Ranker{
		Name: "f" + strconv.Itoa(feature),
		Scorer: func(features map[int]float64) float64 {
			return features[feature]
		},
	}
}

// Rank sorts the documents by decreasing score. Documents with the same score keep their order.
func (r Ranker) Rank(documents []Document) []Document {
	ranked := make([]Document, len(documents))
	copy(ranked, documents)
	scores := make(map[string]float64, len(ranked))
	for _, d := range ranked {
		scores[d.ID] = r.Scorer(d.Features)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].ID] > scores[ranked[j].ID]
	})
	return ranked
}

// IDs ranks the documents and returns their ids.
func (r Ranker) IDs(documents []Document) []string {
	ranked := r.Rank(documents)
	ids := make([]string, len(ranked))
	for i, d := range ranked {
		ids[i] = d.ID
	}
	return ids
}
