package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hyperjump/sijil/internal/config"
	"github.com/hyperjump/sijil/internal/models"
	"github.com/hyperjump/sijil/internal/search"
	"go.uber.org/zap"
)

type mockReloader struct {
	engine  *search.Engine
	records []models.Person
	err     error
	calls   int
}

func (m *mockReloader) Reload(_ context.Context) error {
	m.calls++
	if m.err != nil {
		m.engine.MarkUnavailable("mock", m.err)
		return m.err
	}
	m.engine.Load(m.records, "mock")
	return nil
}

func testPersons() []models.Person {
	return []models.Person{
		{ID: "1", CIIDNum: "1234567890", FullName: "أحمد علي محمد", FirstName: "أحمد",
			FatherName: "علي", GrandfatherName: "محمد", FamilyName: "السالم"},
		{ID: "2", CIIDNum: "5550001111", FullName: "فاطمة حسن", FirstName: "فاطمة",
			FatherName: "حسن"},
	}
}

func newTestServer(t *testing.T, reloader Reloader) (*Server, *search.Engine) {
	t.Helper()
	engine := search.NewEngine(&config.SearchConfig{MaxResults: 100})
	engine.Load(testPersons(), "test")
	srv := NewServer(engine, reloader, &config.ServerConfig{Port: 8080}, zap.NewNop())
	return srv, engine
}

func do(t *testing.T, srv *Server, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	return w
}

func decodeSearch(t *testing.T, w *httptest.ResponseRecorder) models.SearchResponse {
	t.Helper()
	var resp models.SearchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHandleSearch(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodPost, "/api/v1/search",
		models.SearchRequest{Query: "احمد", Highlight: true, RequestID: "abc"})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", w.Code, w.Body.String())
	}
	resp := decodeSearch(t, w)
	if resp.ResultCount != 1 || resp.Results[0].ID != "1" {
		t.Errorf("results: got %+v", resp.Results)
	}
	if resp.Kind != models.QueryKindName {
		t.Errorf("kind: got %q", resp.Kind)
	}
	if resp.RequestID != "abc" {
		t.Errorf("request_id: got %q", resp.RequestID)
	}
	if len(resp.HighlightedNames) != 1 || resp.HighlightedNames[0] != "<mark>أحمد</mark> علي محمد" {
		t.Errorf("highlighted: got %v", resp.HighlightedNames)
	}
	if resp.TotalRecords != 2 || !resp.DataAvailable {
		t.Errorf("totals: got %d available=%v", resp.TotalRecords, resp.DataAvailable)
	}
}

func TestHandleSearch_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", w.Code)
	}
}

func TestHandleSearch_NoQuery(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	resp := decodeSearch(t, do(t, srv, http.MethodPost, "/api/v1/search", models.SearchRequest{Query: "  "}))
	if !resp.NoQuery || resp.Kind != models.QueryKindNone {
		t.Errorf("expected no-query response, got %+v", resp)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Errorf("results: got %v, want empty list", resp.Results)
	}
}

func TestHandleSearchGet(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodGet, "/api/v1/search?q=5550&highlight=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	resp := decodeSearch(t, w)
	if resp.Kind != models.QueryKindID || resp.ResultCount != 1 || resp.Results[0].ID != "2" {
		t.Errorf("id search: got %+v", resp)
	}
	if resp.RequestID == "" {
		t.Error("request id should default to the middleware request id")
	}

	w = do(t, srv, http.MethodGet, "/api/v1/search?q="+url.QueryEscape("علي")+"&limit=x", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad limit: got %d, want 400", w.Code)
	}
}

func TestHandleHighlight(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodPost, "/api/v1/highlight", highlightRequest{Text: "فاطمة حسن", Query: "فاطمه"})
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["highlighted"] != "<mark>فاطمة</mark> حسن" {
		t.Errorf("highlighted: got %q", out["highlighted"])
	}
}

func TestHandleStatus(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodGet, "/api/v1/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	var st models.DatasetStats
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.TotalRecords != 2 || !st.DataAvailable || st.Source != "test" || st.DatasetVersion == "" {
		t.Errorf("stats: got %+v", st)
	}
}

func TestHandleReload(t *testing.T) {
	mock := &mockReloader{records: testPersons()[:1]}
	srv, engine := newTestServer(t, mock)
	mock.engine = engine

	w := do(t, srv, http.MethodPost, "/api/v1/reload", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}
	if mock.calls != 1 || engine.Stats().TotalRecords != 1 {
		t.Errorf("reload: calls=%d records=%d", mock.calls, engine.Stats().TotalRecords)
	}
}

func TestHandleReload_Failure(t *testing.T) {
	mock := &mockReloader{err: errors.New("data unavailable: persons.json: no such file")}
	srv, engine := newTestServer(t, mock)
	mock.engine = engine

	w := do(t, srv, http.MethodPost, "/api/v1/reload", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want 503", w.Code)
	}
	var out map[string]string
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out["error"] == "" {
		t.Error("expected error message")
	}
	resp := decodeSearch(t, do(t, srv, http.MethodPost, "/api/v1/search", models.SearchRequest{Query: "احمد"}))
	if resp.DataAvailable || resp.ResultCount != 0 {
		t.Errorf("after failed reload: available=%v count=%d", resp.DataAvailable, resp.ResultCount)
	}
}

func TestHandleReload_NotConfigured(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodPost, "/api/v1/reload", nil)
	if w.Code != http.StatusNotImplemented {
		t.Errorf("status: got %d, want 501", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	w := do(t, srv, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status: got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type: got %q", ct)
	}
}
