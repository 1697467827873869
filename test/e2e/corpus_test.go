package e2e

import (
	"strings"
	"testing"

	"github.com/hyperjump/sijil/internal/normalize"
)

func TestBuildCorpus_OnePersonPerCombination(t *testing.T) {
	c := BuildCorpus()
	if c.TotalPersons != CorpusSize || len(c.Persons) != CorpusSize {
		t.Fatalf("expected %d persons, got %d", CorpusSize, c.TotalPersons)
	}
	names := make(map[string]bool)
	civil := make(map[string]bool)
	for _, p := range c.Persons {
		if names[p.FullName] {
			t.Errorf("duplicate full name %q", p.FullName)
		}
		if civil[p.CIIDNum.String()] {
			t.Errorf("duplicate civil id %q", p.CIIDNum)
		}
		names[p.FullName] = true
		civil[p.CIIDNum.String()] = true
	}
}

func TestBuildCorpus_QueryTestCasesExist(t *testing.T) {
	c := BuildCorpus()
	if c.TotalQueries == 0 {
		t.Fatal("expected at least one query test case")
	}
	for i, tc := range c.TestCases {
		if strings.TrimSpace(tc.Query) == "" {
			t.Errorf("test case %d: empty query", i)
		}
		if tc.ExpectedID == "" {
			t.Errorf("test case %d: no expected id", i)
		}
	}
}

func TestQueryVariants_NormalizeToFullName(t *testing.T) {
	for _, p := range BuildPersons(20) {
		want := normalize.Normalize(p.FullName)
		if got := normalize.Normalize(plainSpelling(p.FullName)); got != want {
			t.Errorf("plain spelling of %q: got %q, want %q", p.FullName, got, want)
		}
		if got := normalize.Normalize(withFatha(p.FullName)); got != want {
			t.Errorf("diacritics on %q: got %q, want %q", p.FullName, got, want)
		}
	}
}
