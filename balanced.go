package interleaving

// Balanced is balanced interleaving of exactly two lists. Both lists are consumed at the same rate; a coin flip
// made once per ranking decides which list goes first when both have contributed the same number of documents.
type Balanced struct {
	base
}

// NewBalanced creates a balanced interleaving method. It returns ErrTwoListsRequired unless exactly two lists are
// given.
func NewBalanced(lists [][]string, options ...Option) (*Balanced, error) {
	if len(lists) != 2 {
		return nil, ErrTwoListsRequired
	}
	b, err := newBase(lists, options)
	if err != nil {
		return nil, err
	}
	m := &Balanced{base: b}
	m.merge = m.sample
	m.score = m.computeScores
	if m.sampleNum > 0 {
		m.sampleRankings()
	}
	return m, nil
}

func (m *Balanced) sample(maxLength int, lists [][]string) Ranking {
	a, b := lists[0], lists[1]
	aFirst := m.rnd.Intn(2) == 0
	result := Ranking{A: a, B: b}
	included := make(map[string]bool)

	var ka, kb int
	for ka < len(a) && kb < len(b) && result.Len() < maxLength {
		if ka < kb || (ka == kb && aFirst) {
			if !included[a[ka]] {
				result.Documents = append(result.Documents, a[ka])
				included[a[ka]] = true
			}
			ka++
		} else {
			if !included[b[kb]] {
				result.Documents = append(result.Documents, b[kb])
				included[b[kb]] = true
			}
			kb++
		}
	}
	return result
}

func (m *Balanced) computeScores(ranking Ranking, clicks []int) (Scores, error) {
	return BalancedScores(ranking, clicks), nil
}

// BalancedScores scores the two lists of a balanced ranking. Only clicks on documents within the top k+1 of a list
// count for it, where k is the better of the two ranks of the lowest clicked document.
func BalancedScores(ranking Ranking, clicks []int) Scores {
	scores := Scores{0: 0, 1: 0}
	if len(clicks) == 0 {
		return scores
	}
	cmax := clicks[0]
	for _, c := range clicks {
		if c > cmax {
			cmax = c
		}
	}
	last := ranking.At(cmax)
	k := rankOrLength(ranking.A, last)
	if kb := rankOrLength(ranking.B, last); kb < k {
		k = kb
	}
	scores[0] = float64(prefixHits(ranking, clicks, ranking.A, k+1))
	scores[1] = float64(prefixHits(ranking, clicks, ranking.B, k+1))
	return scores
}

// rankOrLength is the 0-based rank of doc in l, or len(l) when it is absent.
func rankOrLength(l []string, doc string) int {
	if i := index(l, doc); i >= 0 {
		return i
	}
	return len(l)
}

// prefixHits counts the clicked documents in the first n documents of l.
func prefixHits(ranking Ranking, clicks []int, l []string, n int) int {
	if n > len(l) {
		n = len(l)
	}
	prefix := make(map[string]bool, n)
	for _, doc := range l[:n] {
		prefix[doc] = true
	}
	var hits int
	for _, c := range clicks {
		if prefix[ranking.At(c)] {
			hits++
		}
	}
	return hits
}
