package search

import "github.com/hyperjump/sijil/internal/models"

// ProcessQuery validates the request and clamps its limit to maxResults.
func ProcessQuery(req *models.SearchRequest, maxResults int) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if maxResults > 0 && req.Limit > maxResults {
		req.Limit = maxResults
	}
	return nil
}
