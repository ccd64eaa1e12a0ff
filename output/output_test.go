package output_test

import (
	"bytes"
	"encoding/json"
	"github.com/hscells/interleaving"
	"github.com/hscells/interleaving/output"
	"github.com/hscells/trecresults"
	"io/ioutil"
	"os"
	"strings"
	"testing"
)

func TestPreferenceFormatters(t *testing.T) {
	names := []string{"bm25", "lm"}
	wins := map[interleaving.Preference]int{{Winner: 0, Loser: 1}: 3, {Winner: 1, Loser: 0}: 1}

	s, err := output.JsonPreferenceFormatter(names, wins)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]map[string]int
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		t.Fatal(err)
	}
	if m["bm25"]["lm"] != 3 || m["lm"]["bm25"] != 1 {
		t.Fatalf("unexpected wins %v", m)
	}

	s, err = output.CsvPreferenceFormatter(names, wins)
	if err != nil {
		t.Fatal(err)
	}
	expected := "Winner,bm25,lm\nbm25,0,3\nlm,1,0\n"
	if s != expected {
		t.Fatalf("expected %q, got %q", expected, s)
	}
}

func TestCsvEvaluationFormatter(t *testing.T) {
	s, err := output.CsvEvaluationFormatter(map[string]map[string]float64{
		"lm":   {"nDCG@10": 0.5, "AP": 0.25},
		"bm25": {"nDCG@10": 0.75, "AP": 0.5},
	})
	if err != nil {
		t.Fatal(err)
	}
	expected := "Ranker,AP,nDCG@10\nbm25,0.5,0.75\nlm,0.25,0.5\n"
	if s != expected {
		t.Fatalf("expected %q, got %q", expected, s)
	}
}

func TestWriteRun(t *testing.T) {
	var buff bytes.Buffer
	err := output.WriteRun(&buff, trecresults.ResultFile{Results: map[string]trecresults.ResultList{
		"1": {{Topic: "1", Iteration: "Q0", DocId: "1-0", Rank: 1, Score: 0.5, RunName: "run"}},
	}})
	if err != nil {
		t.Fatal(err)
	}
	if buff.String() != "1 Q0 1-0 1 0.500000 run\n" {
		t.Fatalf("unexpected run %q", buff.String())
	}
}

func TestDumpStore(t *testing.T) {
	dir, err := ioutil.TempDir("", "interleaving")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	lists := [][]string{{"1", "2"}, {"2", "3"}}
	m, err := interleaving.NewTeamDraft(lists, interleaving.SampleNum(10), interleaving.Seed(1))
	if err != nil {
		t.Fatal(err)
	}

	s := output.NewDumpStore(dir)
	key, err := s.Put(m)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Has(lists) {
		t.Fatal("expected the lists to be stored")
	}
	entries, err := s.Get(key)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(m.RankingDistribution()) {
		t.Fatalf("expected %d rankings, got %d", len(m.RankingDistribution()), len(entries))
	}
	for _, e := range entries {
		if _, ok := e.Ranking["teams"]; !ok {
			t.Fatal("expected the teams to be stored")
		}
	}
	if keys := s.Keys(); len(keys) != 1 || keys[0] != key {
		t.Fatalf("unexpected keys %v", keys)
	}
	if err := s.Erase(key); err != nil {
		t.Fatal(err)
	}
	if s.Has(lists) {
		t.Fatal("expected the lists to be erased")
	}

	unsampled, err := interleaving.NewTeamDraft(lists)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Put(unsampled); !strings.Contains(err.Error(), "not sampled") {
		t.Fatalf("expected an error for unsampled methods, got %v", err)
	}
}
