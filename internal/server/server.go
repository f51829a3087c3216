// Package server exposes the enrichment pipeline over HTTP: POST /query for
// questions, GET /health for liveness.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/constants"
	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

// Answerer runs one pipeline execution. Extracted as an interface so handler
// tests can substitute the pipeline.
type Answerer interface {
	Answer(ctx context.Context, question domain.Question) (string, error)
}

type Server struct {
	answerer   Answerer
	logger     *zap.Logger
	httpServer *http.Server
}

type QuestionRequest struct {
	Question string `json:"question"`
	Persona  string `json:"persona,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func New(addr string, answerer Answerer, logger *zap.Logger) *Server {
	s := &Server{
		answerer: answerer,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start blocks serving requests until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		s.writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	if len([]rune(question)) > constants.AIInputLimits.MaxQuestionLength {
		s.writeError(w, http.StatusBadRequest, "question is too long")
		return
	}

	persona, err := domain.ParsePersona(req.Persona)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("Received question",
		zap.String("question", question),
		zap.String("persona", persona.String()),
	)

	response, err := s.answerer.Answer(r.Context(), domain.Question{
		Text:    question,
		Persona: persona,
	})
	if err != nil {
		s.logger.Error("Error processing question", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(response))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Detail: detail})
}
