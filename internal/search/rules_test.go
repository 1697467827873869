package search

import (
	"testing"

	"github.com/hyperjump/sijil/internal/index"
	"github.com/hyperjump/sijil/internal/models"
	"github.com/stretchr/testify/assert"
)

func entryOf(full, first, father, grandfather, family string) *index.Entry {
	e := index.NewEntry(&models.Person{
		FullName:        full,
		FirstName:       first,
		FatherName:      father,
		GrandfatherName: grandfather,
		FamilyName:      family,
	})
	return &e
}

func nameQuery(raw string) *NameQuery {
	return NewNameQuery(QueryTokens(raw))
}

func TestFullNameContains(t *testing.T) {
	r := FullNameContains{Weight: 100}
	e := entryOf("أحمد علي محمد", "أحمد", "علي", "محمد", "السالم")
	assert.Equal(t, 100, r.Score(e, nameQuery("احمد علي")))
	assert.Equal(t, 0, r.Score(e, nameQuery("علي احمد")), "order matters for the joined query")
	assert.Equal(t, 0, r.Score(entryOf("", "", "", "", ""), nameQuery("احمد")))
}

func TestAllTokensContains(t *testing.T) {
	r := AllTokensContains{Weight: 80}
	e := entryOf("أحمد علي محمد", "أحمد", "علي", "محمد", "")
	assert.Equal(t, 80, r.Score(e, nameQuery("محمد احمد")))
	assert.Equal(t, 0, r.Score(e, nameQuery("محمد خالد")))
	assert.Equal(t, 0, r.Score(e, &NameQuery{}))
}

func TestFieldTokenContains(t *testing.T) {
	e := entryOf("علي علي", "علي", "علي", "", "")
	first := FieldTokenContains{Field: index.FieldFirstName, Weight: 20}
	father := FieldTokenContains{Field: index.FieldFatherName, Weight: 15}
	family := FieldTokenContains{Field: index.FieldFamilyName, Weight: 25}
	// Each token counts separately, even when repeated.
	assert.Equal(t, 40, first.Score(e, nameQuery("علي علي")))
	assert.Equal(t, 15, father.Score(e, nameQuery("علي")))
	assert.Equal(t, 0, family.Score(e, nameQuery("علي")), "empty field never matches")
	assert.Equal(t, "first_name_token_contains", first.Name())
}

func TestSequenceMatch(t *testing.T) {
	r := SequenceMatch{Weight: 50}
	e := entryOf("", "أحمد", "علي", "محمد", "السالم")

	assert.Equal(t, 0, r.Score(e, nameQuery("احمد")), "single token never scores")
	assert.Equal(t, 50, r.Score(e, nameQuery("احمد علي")))
	assert.Equal(t, 50, r.Score(e, nameQuery("علي محمد")))
	assert.Equal(t, 50, r.Score(e, nameQuery("احمد علي محمد السالم")))
	assert.Equal(t, 0, r.Score(e, nameQuery("علي احمد")))
	assert.Equal(t, 0, r.Score(e, nameQuery("ا ب ج د ه")), "more tokens than slots")

	// Every valid offset adds.
	same := entryOf("", "علي", "علي", "علي", "علي")
	assert.Equal(t, 150, r.Score(same, nameQuery("علي علي")))
	assert.Equal(t, 50, r.Score(same, nameQuery("علي علي علي علي")))

	// Substring containment per slot.
	assert.Equal(t, 50, r.Score(e, nameQuery("حم عل")))

	gap := entryOf("", "أحمد", "", "محمد", "")
	assert.Equal(t, 0, r.Score(gap, nameQuery("احمد محمد")))
}

func TestExactEquals(t *testing.T) {
	first := ExactEquals{Field: index.FieldFirstName, Weight: 30}
	family := ExactEquals{Field: index.FieldFamilyName, Weight: 40}
	e := entryOf("", "فاطمة", "", "", "السالم")
	assert.Equal(t, 30, first.Score(e, nameQuery("فاطمه")))
	assert.Equal(t, 0, first.Score(e, nameQuery("فاطم")))
	assert.Equal(t, 40, family.Score(e, nameQuery("السالم")))
	assert.Equal(t, 0, family.Score(entryOf("", "", "", "", ""), &NameQuery{}))
}

func TestScoreEntry_rulesAreAdditive(t *testing.T) {
	e := entryOf("أحمد علي محمد", "أحمد", "علي", "محمد", "السالم")
	q := nameQuery("احمد علي")
	// full name 100 + all tokens 80 + first 20 + father 15 + sequence 50
	assert.Equal(t, 265, ScoreEntry(e, q, DefaultRules))

	// single token: full 100 + all 80 + first 20 + exact first 30
	assert.Equal(t, 230, ScoreEntry(e, nameQuery("احمد"), DefaultRules))
}

func TestDefaultRules_names(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range DefaultRules {
		assert.False(t, seen[r.Name()], "duplicate rule name %s", r.Name())
		seen[r.Name()] = true
	}
	assert.Len(t, DefaultRules, 9)
}
