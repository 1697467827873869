// Package dataset loads the person records from a JSON file, an HTTP endpoint, an
// XLSX workbook or a SQLite database. Sources are read-only.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hyperjump/sijil/internal/config"
	"github.com/hyperjump/sijil/internal/models"
	"go.uber.org/zap"
)

// ErrDataUnavailable wraps every load failure (transport, open or parse).
var ErrDataUnavailable = errors.New("data unavailable")

// Batch is the outcome of one load. Skipped counts records that could not be decoded
// and were left out; they do not fail the load.
type Batch struct {
	Persons []models.Person
	Skipped int
}

// Source produces the full record collection.
type Source interface {
	Load(ctx context.Context) (*Batch, error)
	// Name identifies the source in logs and status output.
	Name() string
}

// Target receives loaded records. *search.Engine implements it.
type Target interface {
	Load(records []models.Person, source string) string
	MarkUnavailable(source string, err error)
}

// NewSource picks a source for cfg. A URL is fetched over HTTP and must serve JSON;
// a path is read according to Format, or its extension when Format is empty.
func NewSource(cfg config.DatasetConfig) (Source, error) {
	if cfg.URL != "" {
		if _, err := url.ParseRequestURI(cfg.URL); err != nil {
			return nil, fmt.Errorf("invalid dataset url: %w", err)
		}
		if cfg.Format != "" && cfg.Format != "json" {
			return nil, fmt.Errorf("dataset url must serve json, got format %q", cfg.Format)
		}
		return NewHTTPSource(cfg.URL, nil), nil
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("dataset path or url is required")
	}
	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = formatFromExt(cfg.Path)
	}
	switch format {
	case "json":
		return &JSONFileSource{Path: cfg.Path}, nil
	case "xlsx":
		return &XLSXSource{Path: cfg.Path, Sheet: cfg.Sheet}, nil
	case "sqlite":
		return NewSQLiteSource(cfg.Path, cfg.Table)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q for %s", format, cfg.Path)
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".xlsx":
		return "xlsx"
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	}
	return ""
}

// Loader runs a source into a target. Reloads are serialized, and each one replaces
// the target's data whole.
type Loader struct {
	source  Source
	target  Target
	timeout time.Duration
	mu      sync.Mutex
	logger  *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets a logger for load events.
func WithLogger(l *zap.Logger) LoaderOption {
	return func(ld *Loader) { ld.logger = l }
}

// WithTimeout bounds each load. Zero means no bound beyond the caller's context.
func WithTimeout(d time.Duration) LoaderOption {
	return func(ld *Loader) { ld.timeout = d }
}

// NewLoader creates a loader.
func NewLoader(source Source, target Target, opts ...LoaderOption) *Loader {
	ld := &Loader{source: source, target: target, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// Reload loads the source and hands the records to the target. On failure the target
// is marked unavailable (it then holds no records) and an error wrapping
// ErrDataUnavailable is returned.
func (ld *Loader) Reload(ctx context.Context) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()

	if ld.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ld.timeout)
		defer cancel()
	}
	start := time.Now()
	batch, err := ld.source.Load(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrDataUnavailable, ld.source.Name(), err)
		ld.target.MarkUnavailable(ld.source.Name(), err)
		return err
	}
	if batch.Skipped > 0 {
		ld.logger.Warn("skipped malformed records",
			zap.String("source", ld.source.Name()),
			zap.Int("skipped", batch.Skipped),
		)
	}
	ld.target.Load(batch.Persons, ld.source.Name())
	ld.logger.Debug("dataset read",
		zap.String("source", ld.source.Name()),
		zap.Int("records", len(batch.Persons)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}
