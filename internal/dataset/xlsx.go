package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperjump/sijil/internal/models"
	"github.com/xuri/excelize/v2"
)

// XLSXSource reads person records from a workbook sheet. The first row is a header
// naming the columns (id, ci_id_num, full_name, first_name, father_name,
// grandfather_name, family_name) in any order; unknown columns are ignored.
type XLSXSource struct {
	Path  string
	Sheet string // first sheet when empty
}

// Name returns the workbook path.
func (s *XLSXSource) Name() string { return s.Path }

// Load opens the workbook and converts each non-empty row to a person.
func (s *XLSXSource) Load(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
	}
	return rowsToBatch(rows)
}

type setter func(p *models.Person, v string)

var columnSetters = map[string]setter{
	"id":               func(p *models.Person, v string) { p.ID = models.FlexString(v) },
	"ci_id_num":        func(p *models.Person, v string) { p.CIIDNum = models.FlexString(v) },
	"full_name":        func(p *models.Person, v string) { p.FullName = v },
	"first_name":       func(p *models.Person, v string) { p.FirstName = v },
	"father_name":      func(p *models.Person, v string) { p.FatherName = v },
	"grandfather_name": func(p *models.Person, v string) { p.GrandfatherName = v },
	"family_name":      func(p *models.Person, v string) { p.FamilyName = v },
}

// headerKey maps "Full Name" and "full-name" to "full_name".
func headerKey(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

func rowsToBatch(rows [][]string) (*Batch, error) {
	if len(rows) == 0 {
		return &Batch{Persons: []models.Person{}}, nil
	}
	setters := make([]setter, len(rows[0]))
	known := 0
	for i, h := range rows[0] {
		if fn, ok := columnSetters[headerKey(h)]; ok {
			setters[i] = fn
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("header row names none of the person fields")
	}
	batch := &Batch{Persons: make([]models.Person, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		var p models.Person
		for i, cell := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](&p, strings.TrimSpace(cell))
			}
		}
		batch.Persons = append(batch.Persons, p)
	}
	return batch, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
