package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"sort"
	"strconv"
)

// EvaluationFormatter formats the measures of each ranker.
type EvaluationFormatter func(map[string]map[string]float64) (string, error)

// JsonEvaluationFormatter outputs results in a JSON format.
func JsonEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	v, err := json.MarshalIndent(results, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvEvaluationFormatter outputs results in CSV format, one row per ranker and one column per measure.
func CsvEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	var measures []string
	seen := make(map[string]bool)
	for _, scores := range results {
		for m := range scores {
			if !seen[m] {
				seen[m] = true
				measures = append(measures, m)
			}
		}
	}
	sort.Strings(measures)

	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	w.Write(append([]string{"Ranker"}, measures...))
	for _, ranker := range sortedKeys(results) {
		record := []string{ranker}
		for _, m := range measures {
			record = append(record, strconv.FormatFloat(results[ranker][m], 'f', -1, 64))
		}
		w.Write(record)
	}
	w.Flush()
	return b.String(), w.Error()
}
