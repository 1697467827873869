// Package normalize canonicalizes Arabic text so that informal spellings of the same
// name compare equal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const (
	Alef            = 'ا'
	AlefMadda       = 'آ'
	AlefHamzaAbove  = 'أ'
	AlefHamzaBelow  = 'إ'
	Yeh             = 'ي'
	AlefMaksura     = 'ى'
	TehMarbuta      = 'ة'
	Heh             = 'ه'
	SuperscriptAlef = '\u0670'

	// Harakat and related marks occupy U+064B..U+065F.
	firstTashkeel = '\u064B'
	lastTashkeel  = '\u065F'
)

func isTashkeel(r rune) bool {
	return (r >= firstTashkeel && r <= lastTashkeel) || r == SuperscriptAlef
}

func foldLetter(r rune) rune {
	switch r {
	case AlefMadda, AlefHamzaAbove, AlefHamzaBelow:
		return Alef
	case AlefMaksura:
		return Yeh
	case TehMarbuta:
		return Heh
	}
	return r
}

// Normalize returns the canonical form of text: diacritics removed, Alef, Ya and
// Ta Marbuta variants folded, whitespace runs collapsed and trimmed, then lower-cased.
// Empty input yields "". Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// A transform.Chain keeps state between calls and must not be shared.
	t := transform.Chain(runes.Remove(runes.Predicate(isTashkeel)), runes.Map(foldLetter))
	folded, _, _ := transform.String(t, text)
	return strings.ToLower(strings.Join(strings.FieldsFunc(folded, unicode.IsSpace), " "))
}

// NormalizeAll normalizes each of texts, preserving order.
func NormalizeAll(texts ...string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = Normalize(t)
	}
	return out
}
