// Package interleaving implements interleaved and multileaved comparison of rankers. Two or more source rankings are
// merged into a single ranking that is shown to a user, and the clicks on that ranking are attributed back to the
// sources to infer which ranker the user prefers.
package interleaving

import (
	"bytes"
	"hash/fnv"
	"sort"
	"strconv"
)

// Ranking is an interleaved list of document identifiers together with the data an interleaving method needs to
// score clicks on it later. Only the fields relevant to the method that produced the ranking are populated.
type Ranking struct {
	Documents []string

	// Teams records which documents were drafted from which source (team draft).
	Teams map[int]map[string]bool
	// A and B are the two original lists (balanced).
	A, B []string
	// Credits maps source -> document -> credit (optimized).
	Credits map[int]map[string]float64
	// Lists are the original source lists (probabilistic).
	Lists [][]string
}

// NewTeamRanking creates an empty ranking with an empty team for each of the n sources.
func NewTeamRanking(n int, documents ...string) Ranking {
	r := Ranking{Documents: documents, Teams: make(map[int]map[string]bool, n)}
	for i := 0; i < n; i++ {
		r.Teams[i] = make(map[string]bool)
	}
	return r
}

// NewCreditRanking creates an empty ranking with an empty credit table for each of the n sources.
func NewCreditRanking(n int, documents ...string) Ranking {
	r := Ranking{Documents: documents, Credits: make(map[int]map[string]float64, n)}
	for i := 0; i < n; i++ {
		r.Credits[i] = make(map[string]float64)
	}
	return r
}

// Len is the number of documents in the ranking.
func (r Ranking) Len() int {
	return len(r.Documents)
}

// Contains reports whether the document has already been placed in the ranking.
func (r Ranking) Contains(doc string) bool {
	return index(r.Documents, doc) >= 0
}

// At returns the document at position i.
func (r Ranking) At(i int) string {
	return r.Documents[i]
}

// Key is a canonical string for the ranking. Two rankings have the same key only if they have the same documents in
// the same order and the same side data.
func (r Ranking) Key() string {
	var b bytes.Buffer
	writeList(&b, 'd', r.Documents)

	if r.Teams != nil {
		keys := make([]int, 0, len(r.Teams))
		for k := range r.Teams {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, team := range keys {
			b.WriteString("t" + strconv.Itoa(team))
			writeList(&b, ':', teamMembers(r.Teams[team]))
		}
	}
	if r.A != nil || r.B != nil {
		writeList(&b, 'a', r.A)
		writeList(&b, 'b', r.B)
	}
	if r.Credits != nil {
		keys := make([]int, 0, len(r.Credits))
		for k := range r.Credits {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, team := range keys {
			b.WriteString("c" + strconv.Itoa(team))
			credits := r.Credits[team]
			docs := make([]string, 0, len(credits))
			for doc := range credits {
				docs = append(docs, doc)
			}
			sort.Strings(docs)
			for _, doc := range docs {
				b.WriteByte(':')
				b.WriteString(strconv.Quote(doc))
				b.WriteByte('=')
				b.WriteString(strconv.FormatFloat(credits[doc], 'g', -1, 64))
			}
		}
	}
	for i, l := range r.Lists {
		b.WriteString("l" + strconv.Itoa(i))
		writeList(&b, ':', l)
	}
	return b.String()
}

// Hash is the fnv-64a hash of the ranking key.
func (r Ranking) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte(r.Key()))
	return h.Sum64()
}

// Equal compares the documents and side data of two rankings.
func (r Ranking) Equal(other Ranking) bool {
	return r.Key() == other.Key()
}

// Dump returns a representation of the ranking suitable for serialisation.
func (r Ranking) Dump() map[string]interface{} {
	d := map[string]interface{}{
		"ranking_list": nonNil(r.Documents),
	}
	if r.Teams != nil {
		teams := make(map[string][]string, len(r.Teams))
		for k, v := range r.Teams {
			teams[strconv.Itoa(k)] = teamMembers(v)
		}
		d["teams"] = teams
	}
	if r.A != nil || r.B != nil {
		d["a"] = nonNil(r.A)
		d["b"] = nonNil(r.B)
	}
	if r.Credits != nil {
		credits := make(map[string]map[string]float64, len(r.Credits))
		for k, v := range r.Credits {
			credits[strconv.Itoa(k)] = v
		}
		d["credits"] = credits
	}
	if r.Lists != nil {
		d["lists"] = r.Lists
	}
	return d
}

// teamMembers returns the members of a team in sorted order.
func teamMembers(team map[string]bool) []string {
	members := make([]string, 0, len(team))
	for doc, ok := range team {
		if ok {
			members = append(members, doc)
		}
	}
	sort.Strings(members)
	return members
}

func writeList(b *bytes.Buffer, prefix byte, l []string) {
	b.WriteByte(prefix)
	b.WriteByte('[')
	for i, doc := range l {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(doc))
	}
	b.WriteByte(']')
}

func nonNil(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}

// index is the position of doc in l, or -1.
func index(l []string, doc string) int {
	for i, d := range l {
		if d == doc {
			return i
		}
	}
	return -1
}
