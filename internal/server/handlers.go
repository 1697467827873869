package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hyperjump/sijil/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.search(w, r, &req)
}

// handleSearchGet serves GET /api/v1/search?q=...&limit=...&highlight=true.
func (s *Server) handleSearchGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := models.SearchRequest{Query: q.Get("q")}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		req.Limit = n
	}
	req.Highlight, _ = strconv.ParseBool(q.Get("highlight"))
	req.Explain, _ = strconv.ParseBool(q.Get("explain"))
	s.search(w, r, &req)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, req *models.SearchRequest) {
	if req.RequestID == "" {
		req.RequestID = middleware.GetReqID(r.Context())
	}
	s.logger.Debug("search request", zap.String("query", req.Query), zap.Int("limit", req.Limit))
	response, err := s.engine.Search(r.Context(), req)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, response)
}

type highlightRequest struct {
	Text  string `json:"text"`
	Query string `json:"query"`
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{
		"highlighted": s.engine.Highlight(req.Text, req.Query),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.engine.Stats())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reloader == nil {
		s.respondError(w, http.StatusNotImplemented, "reload not configured")
		return
	}
	start := time.Now()
	if err := s.reloader.Reload(r.Context()); err != nil {
		s.logger.Warn("reload failed", zap.Error(err))
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	st := s.engine.Stats()
	s.logger.Info("dataset reloaded",
		zap.Int("records", st.TotalRecords),
		zap.Duration("duration", time.Since(start)),
	)
	s.respondJSON(w, http.StatusOK, st)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
