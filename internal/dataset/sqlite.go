package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/sijil/internal/models"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteSource reads person records from a table of a SQLite database. The database
// is opened read-only; rows are returned in rowid order.
type SQLiteSource struct {
	Path  string
	Table string
}

// NewSQLiteSource validates the table name and returns the source.
func NewSQLiteSource(path, table string) (*SQLiteSource, error) {
	if table == "" {
		table = "persons"
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLiteSource{Path: path, Table: table}, nil
}

// Name returns the database path and table.
func (s *SQLiteSource) Name() string { return s.Path + "#" + s.Table }

// Load selects every row of the table.
func (s *SQLiteSource) Load(ctx context.Context) (*Batch, error) {
	db, err := sql.Open("sqlite3", "file:"+s.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, ci_id_num, full_name, first_name, father_name, grandfather_name, family_name
		 FROM %q ORDER BY rowid`, s.Table))
	if err != nil {
		return nil, fmt.Errorf("query persons: %w", err)
	}
	defer rows.Close()

	batch := &Batch{Persons: []models.Person{}}
	for rows.Next() {
		var id, ciid, full, first, father, grandfather, family sql.NullString
		if err := rows.Scan(&id, &ciid, &full, &first, &father, &grandfather, &family); err != nil {
			batch.Skipped++
			continue
		}
		batch.Persons = append(batch.Persons, models.Person{
			ID:              models.FlexString(id.String),
			CIIDNum:         models.FlexString(ciid.String),
			FullName:        full.String,
			FirstName:       first.String,
			FatherName:      father.String,
			GrandfatherName: grandfather.String,
			FamilyName:      family.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read persons: %w", err)
	}
	return batch, nil
}
