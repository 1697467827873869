// Package search classifies, scores, ranks and highlights person-record searches.
package search

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/sijil/internal/config"
	"github.com/hyperjump/sijil/internal/index"
	"github.com/hyperjump/sijil/internal/models"
	"go.uber.org/zap"
)

// snapshot is one loaded dataset with its index. It is replaced whole, never modified.
type snapshot struct {
	index     *index.Index
	version   string
	source    string
	loadedAt  time.Time
	available bool
	loadErr   error
}

// Engine answers searches over the current snapshot. Search may be called from any
// number of goroutines; Load and MarkUnavailable swap the snapshot atomically, and a
// search that already started keeps the snapshot it began with.
type Engine struct {
	current     atomic.Pointer[snapshot]
	config      *config.SearchConfig
	rules       []Rule
	highlighter *Highlighter
	logger      *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets a logger for debug output (loads, searches).
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an engine with no data. Until Load is called every search returns
// no results and reports the data as unavailable.
func NewEngine(cfg *config.SearchConfig, opts ...EngineOption) *Engine {
	if cfg == nil {
		cfg = &config.SearchConfig{}
	}
	e := &Engine{
		config:      cfg,
		rules:       DefaultRules,
		highlighter: DefaultHighlighter,
		logger:      zap.NewNop(),
	}
	if cfg.HighlightOpen != "" || cfg.HighlightClose != "" {
		e.highlighter = NewHighlighter(cfg.HighlightOpen, cfg.HighlightClose)
	}
	for _, opt := range opts {
		opt(e)
	}
	e.current.Store(&snapshot{index: index.Empty()})
	return e
}

// Load builds a fresh index over records and makes it current. It returns the new
// dataset version.
func (e *Engine) Load(records []models.Person, source string) string {
	start := time.Now()
	snap := &snapshot{
		index:     index.Build(records),
		version:   uuid.New().String(),
		source:    source,
		loadedAt:  time.Now(),
		available: true,
	}
	e.current.Store(snap)
	e.logger.Info("dataset loaded",
		zap.String("source", source),
		zap.Int("records", snap.index.Len()),
		zap.String("version", snap.version),
		zap.Duration("build_time", time.Since(start)),
	)
	return snap.version
}

// MarkUnavailable replaces the current data with an empty index and remembers why.
func (e *Engine) MarkUnavailable(source string, err error) {
	e.current.Store(&snapshot{
		index:   index.Empty(),
		source:  source,
		loadErr: err,
	})
	e.logger.Warn("dataset unavailable", zap.String("source", source), zap.Error(err))
}

// Stats describes the current snapshot.
func (e *Engine) Stats() models.DatasetStats {
	snap := e.current.Load()
	st := models.DatasetStats{
		TotalRecords:   snap.index.Len(),
		DataAvailable:  snap.available,
		DatasetVersion: snap.version,
		Source:         snap.source,
		LoadedAt:       snap.loadedAt,
	}
	if snap.loadErr != nil {
		st.LoadError = snap.loadErr.Error()
	}
	return st
}

// Highlight marks the words of displayText that match rawQuery using the engine's markers.
func (e *Engine) Highlight(displayText, rawQuery string) string {
	return e.highlighter.Highlight(displayText, rawQuery)
}

// Search classifies req.Query and runs the matching search path. Missing data is not
// an error: the response is empty with DataAvailable false. The only error is a done ctx.
func (e *Engine) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ProcessQuery(req, e.config.MaxResults); err != nil {
		return nil, err
	}
	snap := e.current.Load()
	q := Classify(req.Query)

	response := &models.SearchResponse{
		Query:          req.Query,
		Kind:           q.Kind.QueryKind(),
		Results:        []models.Person{},
		TotalRecords:   snap.index.Len(),
		DataAvailable:  snap.available,
		DatasetVersion: snap.version,
		RequestID:      req.RequestID,
	}

	var positions []int
	var scores []int
	switch q.Kind {
	case KindNone:
		response.NoQuery = true
	case KindID:
		positions = MatchID(snap.index, q.Digits, req.Limit)
	case KindName:
		ranked := Rank(Match(snap.index, NewNameQuery(q.Tokens), e.rules), req.Limit)
		positions = make([]int, len(ranked))
		scores = make([]int, len(ranked))
		for i, c := range ranked {
			positions[i] = c.Pos
			scores[i] = c.Score
		}
	}

	for _, pos := range positions {
		response.Results = append(response.Results, snap.index.Record(pos))
	}
	response.ResultCount = len(response.Results)
	if req.Highlight {
		response.HighlightedNames = make([]string, len(response.Results))
		for i, p := range response.Results {
			response.HighlightedNames[i] = e.highlighter.Highlight(p.FullName, req.Query)
		}
	}
	if req.Explain && q.Kind == KindName {
		response.Scores = scores
	}
	response.ElapsedMs = float64(time.Since(startTime).Microseconds()) / 1000

	e.logger.Debug("search",
		zap.String("kind", q.Kind.String()),
		zap.Int("results", response.ResultCount),
		zap.Float64("elapsed_ms", response.ElapsedMs),
	)
	return response, nil
}
