package e2e

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/xuri/excelize/v2"

	"github.com/hyperjump/sijil/internal/models"
)

// SupportedFormats lists the dataset file extensions written by WriteDataset.
var SupportedFormats = []string{".json", ".xlsx", ".db"}

var datasetColumns = []string{"id", "ci_id_num", "full_name", "first_name", "father_name", "grandfather_name", "family_name"}

// WriteDataset writes persons to path in the format given by ext.
func WriteDataset(path, ext string, persons []models.Person) error {
	switch ext {
	case ".json":
		return writeJSON(path, persons)
	case ".xlsx":
		return writeXLSX(path, persons)
	case ".db":
		return writeSQLite(path, persons)
	default:
		return fmt.Errorf("unsupported fixture format %q", ext)
	}
}

func writeJSON(path string, persons []models.Person) error {
	data, err := json.Marshal(persons)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func personRow(p *models.Person) []interface{} {
	return []interface{}{
		p.ID.String(), p.CIIDNum.String(), p.FullName,
		p.FirstName, p.FatherName, p.GrandfatherName, p.FamilyName,
	}
}

func writeXLSX(path string, persons []models.Person) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	header := make([]interface{}, len(datasetColumns))
	for i, c := range datasetColumns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i := range persons {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, personRow(&persons[i])); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

func writeSQLite(path string, persons []models.Person) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()
	if _, err := db.Exec(`CREATE TABLE persons (
		id TEXT, ci_id_num TEXT, full_name TEXT, first_name TEXT,
		father_name TEXT, grandfather_name TEXT, family_name TEXT)`); err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO persons VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()
	for i := range persons {
		if _, err := stmt.Exec(personRow(&persons[i])...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
