// Package index builds the normalized, read-only search index over the person records.
package index

import (
	"github.com/hyperjump/sijil/internal/models"
	"github.com/hyperjump/sijil/internal/normalize"
)

// Entry holds the normalized search forms of one person record.
type Entry struct {
	FullName        string
	FirstName       string
	FatherName      string
	GrandfatherName string
	FamilyName      string
	ID              string
	CIIDNum         string
}

// Field selects one normalized name field of an Entry.
type Field int

const (
	FieldFullName Field = iota
	FieldFirstName
	FieldFatherName
	FieldGrandfatherName
	FieldFamilyName
)

// String returns the dataset field name.
func (f Field) String() string {
	switch f {
	case FieldFullName:
		return "full_name"
	case FieldFirstName:
		return "first_name"
	case FieldFatherName:
		return "father_name"
	case FieldGrandfatherName:
		return "grandfather_name"
	case FieldFamilyName:
		return "family_name"
	default:
		return "unknown"
	}
}

// Get returns the normalized value of field f.
func (e *Entry) Get(f Field) string {
	switch f {
	case FieldFullName:
		return e.FullName
	case FieldFirstName:
		return e.FirstName
	case FieldFatherName:
		return e.FatherName
	case FieldGrandfatherName:
		return e.GrandfatherName
	case FieldFamilyName:
		return e.FamilyName
	}
	return ""
}

// NameParts returns the four discrete name fields in lineage order:
// first, father, grandfather, family.
func (e *Entry) NameParts() [4]string {
	return [4]string{e.FirstName, e.FatherName, e.GrandfatherName, e.FamilyName}
}

// Index pairs the records with their entries by position: entries[i] describes records[i].
// An Index is never modified after Build; a new dataset needs a new Index.
type Index struct {
	records []models.Person
	entries []Entry
}

// Build normalizes every record once and returns the index.
// The records slice is copied so later changes by the caller cannot desynchronize the index.
func Build(records []models.Person) *Index {
	idx := &Index{
		records: make([]models.Person, len(records)),
		entries: make([]Entry, len(records)),
	}
	copy(idx.records, records)
	for i := range idx.records {
		idx.entries[i] = NewEntry(&idx.records[i])
	}
	return idx
}

// Empty returns an index with no records. Searches over it return nothing.
func Empty() *Index {
	return &Index{}
}

// NewEntry computes the normalized entry for p.
func NewEntry(p *models.Person) Entry {
	names := normalize.NormalizeAll(p.FullName, p.FirstName, p.FatherName, p.GrandfatherName, p.FamilyName)
	return Entry{
		FullName:        names[0],
		FirstName:       names[1],
		FatherName:      names[2],
		GrandfatherName: names[3],
		FamilyName:      names[4],
		ID:              p.ID.String(),
		CIIDNum:         p.CIIDNum.String(),
	}
}

// Len returns the number of records.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entry returns the normalized entry at position i.
func (idx *Index) Entry(i int) *Entry {
	return &idx.entries[i]
}

// Record returns the original record at position i.
func (idx *Index) Record(i int) models.Person {
	return idx.records[i]
}
