package search

import (
	"fmt"
	"testing"

	"github.com/hyperjump/sijil/internal/index"
	"github.com/hyperjump/sijil/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_onlyPositiveScores(t *testing.T) {
	idx := index.Build([]models.Person{
		{ID: "1", FullName: "أحمد علي", FirstName: "أحمد", FatherName: "علي"},
		{ID: "2", FullName: "خالد سعيد", FirstName: "خالد", FatherName: "سعيد"},
		{ID: "3", FullName: "سالم أحمد", FirstName: "سالم", FatherName: "أحمد"},
	})
	got := Match(idx, nameQuery("احمد"), DefaultRules)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Pos)
	assert.Equal(t, 2, got[1].Pos)
	for _, c := range got {
		assert.Positive(t, c.Score)
	}
}

func TestMatch_emptyIndex(t *testing.T) {
	assert.Empty(t, Match(index.Empty(), nameQuery("احمد"), DefaultRules))
}

func TestMatchID(t *testing.T) {
	idx := index.Build([]models.Person{
		{ID: "1", CIIDNum: "1234567890"},
		{ID: "456", CIIDNum: "111"},
		{ID: "2", CIIDNum: "222"},
	})
	assert.Equal(t, []int{0, 1}, MatchID(idx, "456", 100))
	assert.Equal(t, []int{0}, MatchID(idx, "456", 1))
	assert.Equal(t, []int{2}, MatchID(idx, "222", 100))
	assert.Empty(t, MatchID(idx, "999", 100))
}

func TestMatchID_capsAtLimit(t *testing.T) {
	persons := make([]models.Person, 150)
	for i := range persons {
		persons[i] = models.Person{ID: models.FlexString(fmt.Sprint(i)), CIIDNum: "77"}
	}
	got := MatchID(index.Build(persons), "7", 100)
	require.Len(t, got, 100)
	for i, pos := range got {
		assert.Equal(t, i, pos, "original order preserved")
	}
}

func TestRank(t *testing.T) {
	cands := []Candidate{{Pos: 0, Score: 10}, {Pos: 1, Score: 30}, {Pos: 2, Score: 10}, {Pos: 3, Score: 30}}
	got := Rank(cands, 100)
	assert.Equal(t, []Candidate{{1, 30}, {3, 30}, {0, 10}, {2, 10}}, got)
}

func TestRank_truncates(t *testing.T) {
	cands := make([]Candidate, 150)
	for i := range cands {
		cands[i] = Candidate{Pos: i, Score: 1}
	}
	got := Rank(cands, 100)
	require.Len(t, got, 100)
	assert.Equal(t, 0, got[0].Pos)
	assert.Equal(t, 99, got[99].Pos)
}

func TestRank_empty(t *testing.T) {
	assert.Empty(t, Rank(nil, 100))
}
