package interleaving_test

import (
	"github.com/hscells/interleaving"
	"testing"
)

func TestRankingKey(t *testing.T) {
	a := interleaving.NewTeamRanking(2, "1", "2")
	a.Teams[0]["1"] = true
	a.Teams[1]["2"] = true

	b := interleaving.NewTeamRanking(2, "1", "2")
	b.Teams[0]["1"] = true
	b.Teams[1]["2"] = true

	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Fatal("identical rankings should be equal")
	}

	c := interleaving.NewTeamRanking(2, "1", "2")
	c.Teams[1]["1"] = true
	c.Teams[0]["2"] = true
	if a.Equal(c) {
		t.Fatal("rankings with different teams should differ")
	}

	d := interleaving.NewTeamRanking(2, "2", "1")
	d.Teams[0]["1"] = true
	d.Teams[1]["2"] = true
	if a.Equal(d) {
		t.Fatal("rankings with different orders should differ")
	}
}

func TestRankingDump(t *testing.T) {
	r := interleaving.NewCreditRanking(2, "1", "2")
	r.Credits[0]["1"] = 1
	r.Credits[1]["2"] = 0.5

	d := r.Dump()
	if _, ok := d["ranking_list"]; !ok {
		t.Fatal("missing ranking_list")
	}
	credits, ok := d["credits"].(map[string]map[string]float64)
	if !ok {
		t.Fatalf("unexpected credits %v", d["credits"])
	}
	if credits["1"]["2"] != 0.5 {
		t.Fatalf("expected credit 0.5, got %v", credits["1"]["2"])
	}
	if _, ok := d["teams"]; ok {
		t.Fatal("credit rankings have no teams")
	}
}

func TestRankingContains(t *testing.T) {
	r := interleaving.Ranking{Documents: []string{"a", "b"}}
	if !r.Contains("b") || r.Contains("c") {
		t.Fatal("unexpected contains")
	}
	if r.Len() != 2 || r.At(1) != "b" {
		t.Fatal("unexpected documents")
	}
}
