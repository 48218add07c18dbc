package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/resilientapp/graphq-tutor/apimodels"
	"github.com/resilientapp/graphq-tutor/internal/analyzer"
	"github.com/resilientapp/graphq-tutor/internal/config"
	"github.com/resilientapp/graphq-tutor/internal/store"
	"github.com/resilientapp/graphq-tutor/internal/upstream"
)

func newTestServer(t *testing.T, backendURL string) *Server {
	t.Helper()

	client, err := upstream.NewClient(backendURL, time.Second)
	require.NoError(t, err)

	cfg := config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         "0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
	return New(cfg, analyzer.New(client, nil), store.NewMemoryStore(), nil)
}

func stubBackend(t *testing.T) *httptest.Server {
	t.Helper()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/explanations/explain":
			json.NewEncoder(w).Encode(map[string]any{"explanation": "Fetches data", "complexity": "low"})
		case "/api/optimizations/optimize":
			json.NewEncoder(w).Encode(map[string]any{"suggestions": []map[string]any{{"reason": "Trim fields"}}})
		case "/api/efficiency/estimate":
			json.NewEncoder(w).Encode(map[string]any{"efficiencyScore": 80})
		}
	}))
	t.Cleanup(backend.Close)
	return backend
}

func postAnalyze(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	s := newTestServer(t, stubBackend(t).URL)

	rec := postAnalyze(t, s, `{"query":"{ hero { name } }"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result apimodels.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, "Fetches data", result.Explanation.Explanation)
	require.Len(t, result.Optimizations, 1)
	require.Equal(t, 80, result.Efficiency.Score)
}

func TestHandleAnalyzeRejectsMissingQuery(t *testing.T) {
	s := newTestServer(t, stubBackend(t).URL)

	for _, body := range []string{`{}`, `{"query":""}`, `{"query":"   "}`, `{"query":42}`, `not json`} {
		rec := postAnalyze(t, s, body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)

		var errBody map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody), "body: %s", body)
		require.Equal(t, "Query is required", errBody["error"], "body: %s", body)
	}
}

func TestHandleAnalyzeServesFallbackWithOK(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	backend.Close()
	s := newTestServer(t, backend.URL)

	// An infrastructure outage is absorbed into the fallback, not an error
	// status.
	rec := postAnalyze(t, s, `{"query":"{ hero { name } }"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var result apimodels.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, 92, result.Efficiency.Score)
	require.Equal(t, "< 10ms", result.Efficiency.EstimatedTime)
}

func TestHandleAnalyzeAppendsToSession(t *testing.T) {
	s := newTestServer(t, stubBackend(t).URL)

	rec := postAnalyze(t, s, `{"query":"{ hero { name } }","sessionId":"session-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/conversation/session-1", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []apimodels.ConversationMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Len(t, messages, 2)
	require.Equal(t, apimodels.RoleUser, messages[0].Role)
	require.Equal(t, "{ hero { name } }", messages[0].Query)
	require.Equal(t, apimodels.RoleAssistant, messages[1].Role)
	require.NotNil(t, messages[1].Analysis)
}

func TestHandleAnalyzeWithoutSessionSkipsStore(t *testing.T) {
	s := newTestServer(t, stubBackend(t).URL)

	rec := postAnalyze(t, s, `{"query":"{ hero { name } }"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/conversation/session-1", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var messages []apimodels.ConversationMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Empty(t, messages)
}

func TestHandleClearConversation(t *testing.T) {
	s := newTestServer(t, stubBackend(t).URL)

	rec := postAnalyze(t, s, `{"query":"{ hero { name } }","sessionId":"session-1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/conversation/session-1", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/conversation/session-1", nil)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var messages []apimodels.ConversationMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &messages))
	require.Empty(t, messages)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, stubBackend(t).URL)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
