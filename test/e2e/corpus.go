// Package e2e provides end-to-end tests: a generated person corpus written in every
// supported dataset format, loaded, served over HTTP and queried.
package e2e

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperjump/sijil/internal/models"
)

var (
	firstNames       = []string{"أحمد", "محمد", "علي", "فاطمة", "إبراهيم", "مصطفى", "خديجة", "يوسف", "آمنة", "حسن"}
	fatherNames      = []string{"عبدالله", "خالد", "سعيد", "إسماعيل", "عمر", "حسين", "صالح", "موسى"}
	grandfatherNames = []string{"سليمان", "يحيى", "جابر", "عيسى", "ناصر", "راشد"}
	familyNames      = []string{"السالم", "الزهراني", "العتيبي", "القحطاني", "الحربي"}
)

// CorpusSize is the number of distinct name combinations, one person each.
var CorpusSize = len(firstNames) * len(fatherNames) * len(grandfatherNames) * len(familyNames)

// QueryTestCase defines a query and the record that must come back for it.
// When Top is set, the record must be ranked first; otherwise it must appear anywhere.
type QueryTestCase struct {
	Query       string
	ExpectedID  string
	Top         bool
	Description string
}

// Corpus holds persons and query test cases for E2E tests.
type Corpus struct {
	Persons      []models.Person
	TestCases    []QueryTestCase
	TotalPersons int
	TotalQueries int
}

// BuildCorpus returns one person per name combination and query cases covering full
// names, spelling variants, diacritics, reordered tokens and civil-id lookups.
func BuildCorpus() *Corpus {
	persons := BuildPersons(CorpusSize)
	cases := buildQueryTestCases(persons)
	return &Corpus{
		Persons:      persons,
		TestCases:    cases,
		TotalPersons: len(persons),
		TotalQueries: len(cases),
	}
}

// BuildPersons returns n persons. Names repeat with period CorpusSize; ids and civil
// ids are always unique.
func BuildPersons(n int) []models.Person {
	persons := make([]models.Person, n)
	for i := range persons {
		first := firstNames[i%len(firstNames)]
		father := fatherNames[(i/len(firstNames))%len(fatherNames)]
		grandfather := grandfatherNames[(i/(len(firstNames)*len(fatherNames)))%len(grandfatherNames)]
		family := familyNames[(i/(len(firstNames)*len(fatherNames)*len(grandfatherNames)))%len(familyNames)]
		persons[i] = models.Person{
			ID:              models.FlexString(strconv.Itoa(i + 1)),
			CIIDNum:         models.FlexString(fmt.Sprintf("%010d", 2000000000+i*7919)),
			FullName:        strings.Join([]string{first, father, grandfather, family}, " "),
			FirstName:       first,
			FatherName:      father,
			GrandfatherName: grandfather,
			FamilyName:      family,
		}
	}
	return persons
}

// plainSpelling writes s the way it is often typed: bare Alef, Ha for Ta Marbuta,
// Ya for Alef Maksura.
func plainSpelling(s string) string {
	return strings.NewReplacer("أ", "ا", "إ", "ا", "آ", "ا", "ة", "ه", "ى", "ي").Replace(s)
}

// withFatha puts a fatha after every letter of s.
func withFatha(s string) string {
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(r)
		if r != ' ' {
			b.WriteRune('\u064E')
		}
	}
	return b.String()
}

func buildQueryTestCases(persons []models.Person) []QueryTestCase {
	var cases []QueryTestCase
	for _, k := range []int{0, 3, 4, 8, 537, 1199, len(persons) - 1} {
		p := persons[k]
		id := p.ID.String()
		cases = append(cases,
			QueryTestCase{p.FullName, id, true, "exact full name"},
			QueryTestCase{plainSpelling(p.FullName), id, true, "plain spelling of full name"},
			QueryTestCase{withFatha(p.FullName), id, true, "full name with diacritics"},
			QueryTestCase{"  " + strings.Join(strings.Fields(p.FullName), "   ") + " ", id, true, "irregular whitespace"},
			QueryTestCase{p.CIIDNum.String(), id, true, "civil id"},
			QueryTestCase{p.FamilyName + " " + p.FirstName, id, false, "family then first name"},
			QueryTestCase{p.FatherName + " " + p.GrandfatherName + " " + p.FamilyName, id, false, "name without first name"},
		)
	}
	return cases
}
