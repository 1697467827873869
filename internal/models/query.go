package models

import "strings"

// MaxResults is the hard cap on the number of records returned by one search.
const MaxResults = 100

// SearchRequest is a search call. Query is the raw user input; it is classified by the engine.
type SearchRequest struct {
	Query     string `json:"query"`
	Limit     int    `json:"limit,omitempty"`      // lowers the cap; values <= 0 or > MaxResults mean MaxResults
	Highlight bool   `json:"highlight,omitempty"`  // fill SearchResponse.HighlightedNames
	Explain   bool   `json:"explain,omitempty"`    // fill SearchResponse.Scores (name searches only)
	RequestID string `json:"request_id,omitempty"` // echoed back so clients can drop stale responses
}

// Validate normalizes the limit. Any query string is valid, including an empty one:
// an empty query is reported as a "no query" response, not an error.
func (q *SearchRequest) Validate() error {
	if q.Limit <= 0 || q.Limit > MaxResults {
		q.Limit = MaxResults
	}
	return nil
}

// IsBlank reports whether the request carries no query text.
func (q *SearchRequest) IsBlank() bool {
	return strings.TrimSpace(q.Query) == ""
}
