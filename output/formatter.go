// Package output provides different formats of output for experiments.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"github.com/hscells/interleaving"
	"sort"
	"strconv"
)

// PreferenceFormatter formats how often each ranker was preferred over each other ranker. Rankers are named by
// their position in names.
type PreferenceFormatter func(names []string, wins map[interleaving.Preference]int) (string, error)

// preferenceMatrix is wins[i][j], the number of times ranker i won against ranker j.
func preferenceMatrix(n int, wins map[interleaving.Preference]int) [][]int {
	m := make([][]int, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	for p, c := range wins {
		if p.Winner < n && p.Loser < n {
			m[p.Winner][p.Loser] = c
		}
	}
	return m
}

// JsonPreferenceFormatter outputs the wins as a JSON object of winner -> loser -> count.
func JsonPreferenceFormatter(names []string, wins map[interleaving.Preference]int) (string, error) {
	m := preferenceMatrix(len(names), wins)
	out := make(map[string]map[string]int, len(names))
	for i, winner := range names {
		out[winner] = make(map[string]int, len(names)-1)
		for j, loser := range names {
			if i != j {
				out[winner][loser] = m[i][j]
			}
		}
	}
	v, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvPreferenceFormatter outputs the wins as a CSV matrix with a row per winner and a column per loser.
func CsvPreferenceFormatter(names []string, wins map[interleaving.Preference]int) (string, error) {
	m := preferenceMatrix(len(names), wins)
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	w.Write(append([]string{"Winner"}, names...))
	for i, winner := range names {
		record := make([]string, len(names)+1)
		record[0] = winner
		for j := range names {
			record[j+1] = strconv.Itoa(m[i][j])
		}
		w.Write(record)
	}
	w.Flush()
	return b.String(), w.Error()
}

// PreferenceFormatterByName returns "json" or "csv".
func PreferenceFormatterByName(name string) (PreferenceFormatter, bool) {
	switch name {
	case "json", "":
		return JsonPreferenceFormatter, true
	case "csv":
		return CsvPreferenceFormatter, true
	}
	return nil, false
}

// sortedKeys is used to produce stable output from maps.
func sortedKeys(m map[string]map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
