// Package simulation compares rankers on a learning to rank dataset by simulating users who click on interleaved
// rankings.
package simulation

import (
	"bufio"
	"github.com/pkg/errors"
	"io"
	"strconv"
	"strings"
)

// Document is a judged document of a query in a learning to rank dataset.
type Document struct {
	ID       string
	Rel      int
	QID      string
	Features map[int]float64
}

// Dataset groups the documents of a dataset by query. Queries are kept in the order they first appear.
type Dataset struct {
	Queries   []string
	Documents map[string][]Document
}

// ParseDocument parses a line in the SVMlight format used by LETOR:
//
//	<rel> qid:<qid> <feature>:<value> ... # <comment>
func ParseDocument(line string) (Document, error) {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Document{}, errors.Errorf("expected a relevance grade and a qid in %q", line)
	}
	rel, err := strconv.Atoi(fields[0])
	if err != nil {
		return Document{}, errors.Wrapf(err, "relevance grade in %q", line)
	}
	qid := strings.SplitN(fields[1], ":", 2)
	if len(qid) != 2 || qid[0] != "qid" {
		return Document{}, errors.Errorf("expected qid:<id> in %q", line)
	}

	d := Document{Rel: rel, QID: qid[1], Features: make(map[int]float64, len(fields)-2)}
	for _, f := range fields[2:] {
		kv := strings.SplitN(f, ":", 2)
		if len(kv) != 2 {
			return Document{}, errors.Errorf("malformed feature %q", f)
		}
		k, err := strconv.Atoi(kv[0])
		if err != nil {
			return Document{}, errors.Wrapf(err, "feature %q", f)
		}
		v, err := strconv.ParseFloat(kv[1], 64)
		if err != nil {
			return Document{}, errors.Wrapf(err, "feature %q", f)
		}
		d.Features[k] = v
	}
	return d, nil
}

// ReadDataset reads a dataset, one document per line. Each document is given the id <qid>-<n>, where n counts the
// documents of the query from zero.
func ReadDataset(r io.Reader) (*Dataset, error) {
	ds := &Dataset{Documents: make(map[string][]Document)}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for s.Scan() {
		n++
		line := s.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		d, err := ParseDocument(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		docs, ok := ds.Documents[d.QID]
		if !ok {
			ds.Queries = append(ds.Queries, d.QID)
		}
		d.ID = d.QID + "-" + strconv.Itoa(len(docs))
		ds.Documents[d.QID] = append(docs, d)
	}
	return ds, s.Err()
}

// Relevance maps the document ids of a query to their relevance grades.
func (ds *Dataset) Relevance(qid string) map[string]int {
	rels := make(map[string]int, len(ds.Documents[qid]))
	for _, d := range ds.Documents[qid] {
		rels[d.ID] = d.Rel
	}
	return rels
}
