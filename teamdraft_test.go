package interleaving_test

import (
	"github.com/hscells/interleaving"
	"gonum.org/v1/gonum/floats"
	"reflect"
	"strings"
	"testing"
)

func joined(r interleaving.Ranking) string {
	return strings.Join(r.Documents, ",")
}

func interleavings(m interleaving.Method, n int) map[string]bool {
	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		seen[joined(m.Interleave())] = true
	}
	return seen
}

func TestTeamDraftInterleave(t *testing.T) {
	m, err := interleaving.NewTeamDraft([][]string{{"1", "2"}, {"2", "3"}}, interleaving.MaxLength(3), interleaving.Seed(1))
	if err != nil {
		t.Fatal(err)
	}
	seen := interleavings(m, 1000)
	expected := map[string]bool{"1,2,3": true, "2,1,3": true}
	if !reflect.DeepEqual(seen, expected) {
		t.Fatalf("expected %v, got %v", expected, seen)
	}
}

func TestTeamDraftMaxLength(t *testing.T) {
	m, err := interleaving.NewTeamDraft([][]string{{"1", "2", "3"}, {"4", "5"}}, interleaving.Seed(1))
	if err != nil {
		t.Fatal(err)
	}
	if m.MaxLength() != 2 {
		t.Fatalf("expected the shortest list length, got %d", m.MaxLength())
	}
	for i := 0; i < 100; i++ {
		if r := m.Interleave(); r.Len() != 2 {
			t.Fatalf("expected two documents, got %v", r.Documents)
		}
	}
}

func TestTeamDraftSampling(t *testing.T) {
	m, err := interleaving.NewTeamDraft([][]string{{"1", "2", "3"}, {"2", "3", "1"}},
		interleaving.SampleNum(100), interleaving.Seed(2))
	if err != nil {
		t.Fatal(err)
	}
	d := m.RankingDistribution()
	if len(d) != 4 {
		t.Fatalf("expected 4 rankings, got %d", len(d))
	}
	var sum float64
	for _, rp := range d {
		sum += rp.Probability
	}
	if !floats.EqualWithinAbs(sum, 1, 1e-9) {
		t.Fatalf("probabilities sum to %v", sum)
	}
	if !reflect.DeepEqual(d, m.RankingDistribution()) {
		t.Fatal("the distribution should not change between calls")
	}
	for i := 0; i < 100; i++ {
		r := m.Interleave()
		found := false
		for _, rp := range d {
			if rp.Ranking.Equal(r) {
				found = true
			}
		}
		if !found {
			t.Fatalf("%v was not sampled", r.Documents)
		}
	}
}

func TestTeamDraftEvaluate(t *testing.T) {
	m, err := interleaving.NewTeamDraft([][]string{{"1", "2"}, {"2", "3"}})
	if err != nil {
		t.Fatal(err)
	}
	r := interleaving.NewTeamRanking(2, "1", "2")
	r.Teams[0]["1"] = true
	r.Teams[1]["2"] = true

	prefs, err := m.Evaluate(r, []int{0})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(prefs, []interleaving.Preference{{Winner: 0, Loser: 1}}) {
		t.Fatalf("unexpected preferences %v", prefs)
	}

	prefs, err = m.Evaluate(r, []int{1, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(prefs, []interleaving.Preference{{Winner: 1, Loser: 0}}) {
		t.Fatalf("unexpected preferences %v", prefs)
	}

	prefs, err = m.Evaluate(r, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(prefs) != 0 {
		t.Fatalf("expected no preferences, got %v", prefs)
	}

	if _, err := m.Evaluate(r, []int{2}); !interleaving.IsUsageError(err) {
		t.Fatalf("expected a usage error, got %v", err)
	}
}

func TestTeamDraftMultileave(t *testing.T) {
	lists := [][]string{{"1", "2", "3"}, {"4", "5", "6"}, {"7", "8", "9"}}
	m, err := interleaving.NewTeamDraft(lists, interleaving.MaxLength(9), interleaving.Seed(3))
	if err != nil {
		t.Fatal(err)
	}
	r := m.Interleave()
	if r.Len() != 9 {
		t.Fatalf("expected every document, got %v", r.Documents)
	}
	for team, members := range r.Teams {
		if len(members) != 3 {
			t.Fatalf("team %d drafted %d documents", team, len(members))
		}
	}
	scores, err := m.ComputeScores(r, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	if sum != 3 {
		t.Fatalf("every click belongs to one team, got %v", scores)
	}
}
