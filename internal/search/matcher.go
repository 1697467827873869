package search

import (
	"strings"

	"github.com/hyperjump/sijil/internal/index"
)

// Candidate is a scored record position, valid for one search call.
type Candidate struct {
	Pos   int
	Score int
}

// Match scores every entry of idx against q and returns the entries with a positive
// total, in index order. It scans the whole index; there is no pruning.
func Match(idx *index.Index, q *NameQuery, rules []Rule) []Candidate {
	var out []Candidate
	for i := 0; i < idx.Len(); i++ {
		if score := ScoreEntry(idx.Entry(i), q, rules); score > 0 {
			out = append(out, Candidate{Pos: i, Score: score})
		}
	}
	return out
}

// ScoreEntry sums rules over one entry.
func ScoreEntry(e *index.Entry, q *NameQuery, rules []Rule) int {
	total := 0
	for _, r := range rules {
		total += r.Score(e, q)
	}
	return total
}

// MatchID returns the positions whose ci_id_num or id contains digits, in index
// order, stopping after limit matches.
func MatchID(idx *index.Index, digits string, limit int) []int {
	var out []int
	for i := 0; i < idx.Len() && len(out) < limit; i++ {
		e := idx.Entry(i)
		if strings.Contains(e.CIIDNum, digits) || strings.Contains(e.ID, digits) {
			out = append(out, i)
		}
	}
	return out
}
