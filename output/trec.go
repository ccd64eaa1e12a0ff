package output

import (
	"fmt"
	"github.com/hscells/trecresults"
	"io"
	"sort"
)

// WriteRun writes the results in the trec run format, topics in lexical order.
func WriteRun(w io.Writer, results trecresults.ResultFile) error {
	topics := make([]string, 0, len(results.Results))
	for topic := range results.Results {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	for _, topic := range topics {
		for _, r := range results.Results[topic] {
			if _, err := fmt.Fprintf(w, "%s %s %s %d %f %s\n", r.Topic, r.Iteration, r.DocId, r.Rank, r.Score, r.RunName); err != nil {
				return err
			}
		}
	}
	return nil
}
