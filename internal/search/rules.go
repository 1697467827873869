package search

import (
	"strings"

	"github.com/hyperjump/sijil/internal/index"
)

// Rule is one scoring heuristic. Rules are additive: every rule is evaluated for
// every entry and the results are summed.
type Rule interface {
	Name() string
	Score(e *index.Entry, q *NameQuery) int
}

// DefaultRules is the scoring table used by the engine, in evaluation order.
var DefaultRules = []Rule{
	FullNameContains{Weight: 100},
	AllTokensContains{Weight: 80},
	FieldTokenContains{Field: index.FieldFirstName, Weight: 20},
	FieldTokenContains{Field: index.FieldFatherName, Weight: 15},
	FieldTokenContains{Field: index.FieldGrandfatherName, Weight: 10},
	FieldTokenContains{Field: index.FieldFamilyName, Weight: 25},
	SequenceMatch{Weight: 50},
	ExactEquals{Field: index.FieldFirstName, Weight: 30},
	ExactEquals{Field: index.FieldFamilyName, Weight: 40},
}

// contains is substring containment where an empty needle never matches.
func contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

// FullNameContains fires when the normalized full name contains the whole joined query.
type FullNameContains struct {
	Weight int
}

func (r FullNameContains) Name() string { return "full_name_contains" }

func (r FullNameContains) Score(e *index.Entry, q *NameQuery) int {
	if contains(e.FullName, q.Joined) {
		return r.Weight
	}
	return 0
}

// AllTokensContains fires when every token occurs somewhere in the full name, in any order.
type AllTokensContains struct {
	Weight int
}

func (r AllTokensContains) Name() string { return "all_tokens_contains" }

func (r AllTokensContains) Score(e *index.Entry, q *NameQuery) int {
	if len(q.Tokens) == 0 {
		return 0
	}
	for _, tok := range q.Tokens {
		if !contains(e.FullName, tok) {
			return 0
		}
	}
	return r.Weight
}

// FieldTokenContains adds Weight for each token contained in Field.
type FieldTokenContains struct {
	Field  index.Field
	Weight int
}

func (r FieldTokenContains) Name() string { return r.Field.String() + "_token_contains" }

func (r FieldTokenContains) Score(e *index.Entry, q *NameQuery) int {
	value := e.Get(r.Field)
	score := 0
	for _, tok := range q.Tokens {
		if contains(value, tok) {
			score += r.Weight
		}
	}
	return score
}

// SequenceMatch treats first, father, grandfather and family names as four ordered
// slots. For a query of n >= 2 tokens it slides a window of n slots across them and
// adds Weight for every offset where each token is contained in its slot.
type SequenceMatch struct {
	Weight int
}

func (r SequenceMatch) Name() string { return "sequence_match" }

func (r SequenceMatch) Score(e *index.Entry, q *NameQuery) int {
	n := len(q.Tokens)
	if n < 2 {
		return 0
	}
	slots := e.NameParts()
	score := 0
	for off := 0; off+n <= len(slots); off++ {
		if windowMatches(slots[off:off+n], q.Tokens) {
			score += r.Weight
		}
	}
	return score
}

func windowMatches(slots, tokens []string) bool {
	for i, tok := range tokens {
		if !contains(slots[i], tok) {
			return false
		}
	}
	return true
}

// ExactEquals fires when Field equals the whole joined query.
type ExactEquals struct {
	Field  index.Field
	Weight int
}

func (r ExactEquals) Name() string { return r.Field.String() + "_exact" }

func (r ExactEquals) Score(e *index.Entry, q *NameQuery) int {
	if q.Joined != "" && e.Get(r.Field) == q.Joined {
		return r.Weight
	}
	return 0
}
