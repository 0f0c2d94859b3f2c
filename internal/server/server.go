// Package server exposes the analyzer over a JSON HTTP API for desk
// frontends. Scoring itself is pure; the server adds the cross-cutting
// wiring — audit log, history store, alert webhooks, hot reload.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codrin-preda/gamemna/internal/alert"
	"github.com/codrin-preda/gamemna/internal/audit"
	"github.com/codrin-preda/gamemna/internal/deal"
	"github.com/codrin-preda/gamemna/internal/history"
	"github.com/codrin-preda/gamemna/internal/model"
	"github.com/codrin-preda/gamemna/internal/report"
)

// Config holds HTTP server configuration.
type Config struct {
	Port            int
	CalibrationPath string
	AuditLogPath    string
	HistoryPath     string
	EnableHistory   bool
}

// Server serves the evaluation API.
type Server struct {
	cfg Config

	mu              sync.RWMutex
	cal             *deal.Calibration
	calibrationHash string
	dispatcher      *alert.Dispatcher

	auditLog *audit.Log
	store    *history.Store
	srv      *http.Server
}

// NewServer creates a server with loaded calibration and optional
// audit log and history store.
func NewServer(cfg Config) (*Server, error) {
	cal, hash, err := deal.LoadCalibrationWithHash(cfg.CalibrationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load calibration: %w", err)
	}

	s := &Server{
		cfg:             cfg,
		cal:             cal,
		calibrationHash: hash,
		dispatcher:      alert.NewDispatcher(cal.Alerts),
	}

	if cfg.AuditLogPath != "" {
		s.auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	if cfg.EnableHistory {
		s.store, err = history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open history store: %w", err)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /v1/strategy", s.handleStrategy)
	mux.HandleFunc("GET /v1/calibration", s.handleCalibration)
	mux.HandleFunc("GET /v1/history", s.handleHistory)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s, nil
}

// Start begins listening. Blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns the underlying HTTP handler. For testing.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Close waits for in-flight alert deliveries and releases the audit
// log and history store.
func (s *Server) Close() error {
	s.mu.RLock()
	dispatcher := s.dispatcher
	s.mu.RUnlock()
	if dispatcher != nil {
		dispatcher.Flush()
	}

	var firstErr error
	if s.auditLog != nil {
		firstErr = s.auditLog.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ReloadCalibration re-reads the calibration file and swaps it in.
func (s *Server) ReloadCalibration() error {
	cal, hash, err := deal.LoadCalibrationWithHash(s.cfg.CalibrationPath)
	if err != nil {
		return fmt.Errorf("reload calibration: %w", err)
	}

	s.mu.Lock()
	s.cal = cal
	s.calibrationHash = hash
	s.dispatcher = alert.NewDispatcher(cal.Alerts)
	s.mu.Unlock()

	return nil
}

// --- Request/response types ---

type evaluateRequest struct {
	Bidders      int     `json:"bidders"`
	DueDiligence float64 `json:"due_diligence"`
	CulturalFit  float64 `json:"cultural_fit"`
	Regulatory   string  `json:"regulatory_risk,omitempty"`
	Competition  string  `json:"competition_level,omitempty"`
	Save         bool    `json:"save,omitempty"`
}

type evaluateResponse struct {
	report.Briefing
	EvalID          string `json:"eval_id,omitempty"`
	CalibrationHash string `json:"calibration_hash"`
}

type strategyRequest struct {
	Regulatory  string `json:"regulatory_risk"`
	Competition string `json:"competition_level"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// --- Handlers ---

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	s.mu.RLock()
	cal := s.cal
	hash := s.calibrationHash
	dispatcher := s.dispatcher
	s.mu.RUnlock()

	in := model.DealInput{
		Bidders:      req.Bidders,
		DueDiligence: req.DueDiligence,
		CulturalFit:  req.CulturalFit,
	}
	rep := deal.Score(in, cal)

	var advice *model.StrategyAdvice
	if req.Regulatory != "" || req.Competition != "" {
		a, err := deal.RecommendTags(req.Regulatory, req.Competition)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		advice = &a
	}

	evalID := uuid.NewString()

	if s.auditLog != nil {
		entry := audit.Entry{
			EvalID: evalID,
			Input: audit.EntryInput{
				Bidders:      in.Bidders,
				DueDiligence: in.DueDiligence,
				CulturalFit:  in.CulturalFit,
			},
			Score:           rep.Score,
			Level:           string(rep.Level),
			Recommendation:  rep.Recommendation,
			CalibrationHash: hash,
		}
		if err := s.auditLog.Record(entry); err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("audit log: %v", err))
			return
		}
	}

	if req.Save && s.store != nil {
		if err := s.store.Save(evalID, in, rep, hash); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}

	if dispatcher != nil {
		dispatcher.Dispatch(alert.AlertEvent{
			Timestamp:       time.Now().UTC().Format(audit.TimestampFormat),
			EvalID:          evalID,
			Bidders:         in.Bidders,
			DueDiligence:    in.DueDiligence,
			CulturalFit:     in.CulturalFit,
			Score:           rep.Score,
			Level:           string(rep.Level),
			Recommendation:  rep.Recommendation,
			Drivers:         rep.Drivers,
			CalibrationHash: hash,
		})
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Briefing:        report.New(in, rep, cal, advice),
		EvalID:          evalID,
		CalibrationHash: hash,
	})
}

func (s *Server) handleStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	advice, err := deal.RecommendTags(req.Regulatory, req.Competition)
	if err != nil {
		var ute *model.UnknownTierError
		if errors.As(err, &ute) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, advice)
}

func (s *Server) handleCalibration(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"calibration": s.cal,
		"hash":        s.calibrationHash,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusNotFound, "history store not enabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}

	records, err := s.store.List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"evaluations": records})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
