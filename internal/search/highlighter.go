package search

import (
	"strings"

	"github.com/hyperjump/sijil/internal/normalize"
)

// Highlighter wraps matched words of display text in Open/Close markers.
//
// Matching is per whole word: a word is marked when its normalized form contains any
// query token, and the entire original word is wrapped. Because normalization can
// shorten a word, the marked span is not mapped back to the exact matched characters.
type Highlighter struct {
	Open  string
	Close string
}

// DefaultHighlighter uses <mark> tags.
var DefaultHighlighter = &Highlighter{Open: "<mark>", Close: "</mark>"}

// NewHighlighter returns a highlighter with the given markers.
func NewHighlighter(open, close string) *Highlighter {
	return &Highlighter{Open: open, Close: close}
}

// Highlight marks the words of displayText that match rawQuery. Empty and all-digit
// queries leave the text unchanged.
func (h *Highlighter) Highlight(displayText, rawQuery string) string {
	q := strings.TrimSpace(rawQuery)
	if q == "" || isDigits(q) {
		return displayText
	}
	tokens := QueryTokens(q)
	if len(tokens) == 0 {
		return displayText
	}
	words := strings.Split(displayText, " ")
	for i, w := range words {
		if wordMatches(normalize.Normalize(w), tokens) {
			words[i] = h.Open + w + h.Close
		}
	}
	return strings.Join(words, " ")
}

func wordMatches(word string, tokens []string) bool {
	for _, tok := range tokens {
		if contains(word, tok) {
			return true
		}
	}
	return false
}

// Highlight marks displayText with the default markers.
func Highlight(displayText, rawQuery string) string {
	return DefaultHighlighter.Highlight(displayText, rawQuery)
}
