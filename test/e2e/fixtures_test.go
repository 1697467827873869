package e2e

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hyperjump/sijil/internal/config"
	"github.com/hyperjump/sijil/internal/dataset"
)

func TestWriteDataset_AllFormatsReadBack(t *testing.T) {
	persons := BuildPersons(25)
	for _, ext := range SupportedFormats {
		ext := ext
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "persons"+ext)
			if err := WriteDataset(path, ext, persons); err != nil {
				t.Fatalf("WriteDataset: %v", err)
			}
			src, err := dataset.NewSource(config.DatasetConfig{Path: path})
			if err != nil {
				t.Fatalf("NewSource: %v", err)
			}
			batch, err := src.Load(context.Background())
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(batch.Persons) != len(persons) || batch.Skipped != 0 {
				t.Fatalf("got %d persons (%d skipped), want %d", len(batch.Persons), batch.Skipped, len(persons))
			}
			for i := range persons {
				if batch.Persons[i] != persons[i] {
					t.Errorf("person %d: got %+v, want %+v", i, batch.Persons[i], persons[i])
				}
			}
		})
	}
}

func TestWriteDataset_UnknownFormat(t *testing.T) {
	if err := WriteDataset(filepath.Join(t.TempDir(), "p.csv"), ".csv", nil); err == nil {
		t.Error("expected error for unknown format")
	}
}
