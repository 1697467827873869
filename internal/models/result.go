package models

import "time"

// QueryKind names the variant a raw query was classified into.
type QueryKind string

const (
	// QueryKindNone is an empty or whitespace-only query; no search was run.
	QueryKindNone QueryKind = "none"
	// QueryKindID is an all-digit query matched against id and ci_id_num.
	QueryKindID QueryKind = "id"
	// QueryKindName is a name query matched against the normalized name fields.
	QueryKindName QueryKind = "name"
)

// SearchResponse is the result of one search call.
// NoQuery distinguishes "nothing was entered" from a search that found nothing.
type SearchResponse struct {
	Query       string    `json:"query"`
	Kind        QueryKind `json:"kind"`
	NoQuery     bool      `json:"no_query"`
	Results     []Person  `json:"results"`
	ResultCount int       `json:"result_count"`
	ElapsedMs   float64   `json:"elapsed_ms"`
	// HighlightedNames holds the marked-up full name of each result when highlighting was requested.
	HighlightedNames []string `json:"highlighted_names,omitempty"`
	// Scores holds the relevance score of each result when explain was requested.
	Scores []int `json:"scores,omitempty"`

	TotalRecords   int    `json:"total_records"`
	DataAvailable  bool   `json:"data_available"`
	DatasetVersion string `json:"dataset_version,omitempty"`
	RequestID      string `json:"request_id,omitempty"`
}

// DatasetStats describes the dataset currently loaded into the engine.
type DatasetStats struct {
	TotalRecords   int       `json:"total_records"`
	DataAvailable  bool      `json:"data_available"`
	DatasetVersion string    `json:"dataset_version,omitempty"`
	Source         string    `json:"source,omitempty"`
	LoadedAt       time.Time `json:"loaded_at,omitempty"`
	LoadError      string    `json:"load_error,omitempty"`
}
