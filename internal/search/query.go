package search

import (
	"strings"
	"unicode"

	"github.com/hyperjump/sijil/internal/models"
	"github.com/hyperjump/sijil/internal/normalize"
)

// Kind is the variant of a classified query.
type Kind int

const (
	// KindNone means nothing searchable was entered.
	KindNone Kind = iota
	// KindID means the input is all decimal digits.
	KindID
	// KindName means the input is one or more name tokens.
	KindName
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	return string(k.QueryKind())
}

// QueryKind maps k to the response model value.
func (k Kind) QueryKind() models.QueryKind {
	switch k {
	case KindID:
		return models.QueryKindID
	case KindName:
		return models.QueryKindName
	default:
		return models.QueryKindNone
	}
}

// Query is a classified user input. Digits is set for KindID, Tokens for KindName.
type Query struct {
	Kind   Kind
	Digits string
	Tokens []string
}

// NameQuery is the form the scoring rules consume.
type NameQuery struct {
	// Tokens are normalized and non-empty, in input order.
	Tokens []string
	// Joined is Tokens separated by single spaces.
	Joined string
}

// NewNameQuery builds a NameQuery from normalized tokens.
func NewNameQuery(tokens []string) *NameQuery {
	return &NameQuery{Tokens: tokens, Joined: strings.Join(tokens, " ")}
}

// Classify maps any raw input to exactly one query variant. It never fails.
func Classify(raw string) Query {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Query{Kind: KindNone}
	}
	if isDigits(trimmed) {
		return Query{Kind: KindID, Digits: trimmed}
	}
	tokens := QueryTokens(trimmed)
	if len(tokens) == 0 {
		return Query{Kind: KindNone}
	}
	return Query{Kind: KindName, Tokens: tokens}
}

// QueryTokens splits raw on whitespace and normalizes each fragment. Fragments that
// normalize to nothing, or hold no letter or digit, are dropped.
func QueryTokens(raw string) []string {
	fields := strings.Fields(raw)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := normalize.Normalize(f)
		if tok == "" || !strings.ContainsFunc(tok, isLetterOrDigit) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isLetterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isDigits reports whether s is non-empty and made only of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
