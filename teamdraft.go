package interleaving

// TeamDraft is team draft interleaving, generalised to any number of lists (team draft multileaving). The lists
// take turns to draft their highest ranked document that is not yet in the ranking; the list with the fewest
// drafted documents picks next, with ties broken at random.
type TeamDraft struct {
	base
}

// NewTeamDraft creates a team draft method for the lists.
func NewTeamDraft(lists [][]string, options ...Option) (*TeamDraft, error) {
	b, err := newBase(lists, options)
	if err != nil {
		return nil, err
	}
	t := &TeamDraft{base: b}
	t.merge = t.sample
	t.score = t.computeScores
	if t.sampleNum > 0 {
		t.sampleRankings()
	}
	return t, nil
}

func (t *TeamDraft) sample(maxLength int, lists [][]string) Ranking {
	result := NewTeamRanking(len(lists))
	included := make(map[string]bool)
	// Position of the next candidate document in each list.
	next := make([]int, len(lists))
	empty := make([]bool, len(lists))

	for result.Len() < maxLength {
		team, ok := t.selectTeam(result, empty)
		if !ok {
			break
		}
		l := lists[team]
		for next[team] < len(l) && included[l[next[team]]] {
			next[team]++
		}
		if next[team] >= len(l) {
			empty[team] = true
			continue
		}
		doc := l[next[team]]
		result.Documents = append(result.Documents, doc)
		result.Teams[team][doc] = true
		included[doc] = true
	}
	return result
}

// selectTeam picks uniformly among the non-empty teams with the fewest members.
func (t *TeamDraft) selectTeam(r Ranking, empty []bool) (int, bool) {
	var candidates []int
	fewest := -1
	for team := range empty {
		if empty[team] {
			continue
		}
		size := len(r.Teams[team])
		switch {
		case fewest < 0 || size < fewest:
			fewest = size
			candidates = append(candidates[:0], team)
		case size == fewest:
			candidates = append(candidates, team)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[t.rnd.Intn(len(candidates))], true
}

// computeScores counts the clicks on documents drafted by each team.
func (t *TeamDraft) computeScores(ranking Ranking, clicks []int) (Scores, error) {
	return TeamScores(ranking, clicks), nil
}

// TeamScores counts, for each team of the ranking, the clicks on documents drafted by that team.
func TeamScores(ranking Ranking, clicks []int) Scores {
	scores := make(Scores, len(ranking.Teams))
	for team, members := range ranking.Teams {
		scores[team] = 0
		for _, c := range clicks {
			if members[ranking.At(c)] {
				scores[team]++
			}
		}
	}
	return scores
}
