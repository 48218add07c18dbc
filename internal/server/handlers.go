package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/resilientapp/graphq-tutor/apimodels"
	"github.com/resilientapp/graphq-tutor/internal/analyzer"
	"github.com/resilientapp/graphq-tutor/internal/metrics"
)

// Error bodies defined by the inbound contract.
const (
	errQueryRequired = "Query is required"
	errAnalyzeFailed = "Failed to analyze query"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.ObserveAnalysis(0, metrics.OutcomeInvalid)
		writeJSONError(w, http.StatusBadRequest, errQueryRequired)
		return
	}
	defer r.Body.Close()

	s.logger.Debug("Received analysis request", "query", req.Query, "session", req.SessionID)

	start := time.Now()
	result, err := s.analyzer.Analyze(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, analyzer.ErrInvalidInput) {
			metrics.ObserveAnalysis(time.Since(start), metrics.OutcomeInvalid)
			writeJSONError(w, http.StatusBadRequest, errQueryRequired)
			return
		}
		s.logger.Error("Analysis request failed", "error", err)
		metrics.ObserveAnalysis(time.Since(start), metrics.OutcomeError)
		writeJSONError(w, http.StatusInternalServerError, errAnalyzeFailed)
		return
	}
	metrics.ObserveAnalysis(time.Since(start), metrics.OutcomeSuccess)

	if req.SessionID != "" {
		s.appendExchange(r, req, result)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error("Failed to encode analysis response", "error", err)
	}
}

// appendExchange records the user/assistant message pair on the session
// transcript. Store failures are logged and never fail the response.
func (s *Server) appendExchange(r *http.Request, req apimodels.AnalysisRequest, result apimodels.AnalysisResult) {
	if s.store == nil {
		return
	}
	ctx := r.Context()
	userMsg := apimodels.NewUserMessage(strings.TrimSpace(req.Query))
	if err := s.store.Append(ctx, req.SessionID, userMsg); err != nil {
		s.logger.Warn("Failed to append user message", "session", req.SessionID, "error", err)
		return
	}
	assistantMsg := apimodels.NewAssistantMessage(result)
	if err := s.store.Append(ctx, req.SessionID, assistantMsg); err != nil {
		s.logger.Warn("Failed to append assistant message", "session", req.SessionID, "error", err)
	}
}

func (s *Server) handleLoadConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if s.store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Conversation store not configured")
		return
	}

	messages, err := s.store.Load(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("Failed to load conversation", "session", sessionID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to load conversation")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(messages); err != nil {
		s.logger.Error("Failed to encode conversation", "error", err)
	}
}

func (s *Server) handleClearConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if s.store == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "Conversation store not configured")
		return
	}

	if err := s.store.Clear(r.Context(), sessionID); err != nil {
		s.logger.Error("Failed to clear conversation", "session", sessionID, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to clear conversation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
