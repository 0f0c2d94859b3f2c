package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codrin-preda/gamemna/internal/audit"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.CalibrationPath == "" {
		cfg.CalibrationPath = filepath.Join(t.TempDir(), "missing-calibration.yaml")
	}
	s, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestEvaluateEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := postJSON(t, s.Handler(), "/v1/evaluate",
		`{"bidders":4,"due_diligence":0.5,"cultural_fit":0.5}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Report struct {
			Score   int      `json:"score"`
			Level   string   `json:"risk_level"`
			Drivers []string `json:"drivers"`
		} `json:"report"`
		CalibrationHash string `json:"calibration_hash"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Report.Score != 55 || resp.Report.Level != "HIGH" {
		t.Errorf("report = %+v, want score 55 level HIGH", resp.Report)
	}
	if len(resp.Report.Drivers) != 3 {
		t.Errorf("drivers = %d, want 3", len(resp.Report.Drivers))
	}
	if !strings.HasPrefix(resp.CalibrationHash, "sha256:") {
		t.Errorf("calibration hash = %q", resp.CalibrationHash)
	}
}

func TestEvaluateWithStrategyContext(t *testing.T) {
	s := newTestServer(t, Config{})

	w := postJSON(t, s.Handler(), "/v1/evaluate",
		`{"bidders":8,"due_diligence":0.1,"cultural_fit":0.05,"regulatory_risk":"High","competition_level":"High"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Preemptive Remedies") {
		t.Errorf("response missing advisory: %s", w.Body.String())
	}
}

func TestEvaluateRejectsUnknownTier(t *testing.T) {
	s := newTestServer(t, Config{})

	w := postJSON(t, s.Handler(), "/v1/evaluate",
		`{"bidders":4,"due_diligence":0.5,"cultural_fit":0.5,"regulatory_risk":"Medium","competition_level":"High"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unrecognized regulatory tier") {
		t.Errorf("error body: %s", w.Body.String())
	}
}

func TestStrategyEndpoint(t *testing.T) {
	s := newTestServer(t, Config{})

	w := postJSON(t, s.Handler(), "/v1/strategy",
		`{"regulatory_risk":"Low","competition_level":"Low"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Low-Ball / Opportunistic") {
		t.Errorf("response missing advisory label: %s", w.Body.String())
	}
}

func TestStrategyEndpointRejectsBadTags(t *testing.T) {
	s := newTestServer(t, Config{})

	w := postJSON(t, s.Handler(), "/v1/strategy",
		`{"regulatory_risk":"High","competition_level":"medium"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestEvaluateRecordsAuditEntry(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "evaluations.jsonl")
	s := newTestServer(t, Config{AuditLogPath: logPath})

	w := postJSON(t, s.Handler(), "/v1/evaluate",
		`{"bidders":4,"due_diligence":0.5,"cultural_fit":0.5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	result := audit.Verify(logPath)
	if !result.Valid || result.Lines != 1 {
		t.Errorf("audit log after one evaluation: %+v", result)
	}
}

func TestEvaluateSavesToHistory(t *testing.T) {
	s := newTestServer(t, Config{
		EnableHistory: true,
		HistoryPath:   filepath.Join(t.TempDir(), "history.db"),
	})

	w := postJSON(t, s.Handler(), "/v1/evaluate",
		`{"bidders":4,"due_diligence":0.5,"cultural_fit":0.5,"save":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/history?limit=5", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"score":55`) && !strings.Contains(rec.Body.String(), `"score": 55`) {
		t.Errorf("history missing saved evaluation: %s", rec.Body.String())
	}
}

func TestEvaluateAuditAndHistoryShareOneID(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "evaluations.jsonl")
	s := newTestServer(t, Config{
		AuditLogPath:  logPath,
		EnableHistory: true,
		HistoryPath:   filepath.Join(dir, "history.db"),
	})

	w := postJSON(t, s.Handler(), "/v1/evaluate",
		`{"bidders":4,"due_diligence":0.5,"cultural_fit":0.5,"save":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		EvalID string `json:"eval_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read audit log: %v", err)
	}
	var entry audit.Entry
	if err := json.Unmarshal(bytes.Split(data, []byte("\n"))[0], &entry); err != nil {
		t.Fatalf("parse audit entry: %v", err)
	}
	if entry.EvalID != resp.EvalID {
		t.Errorf("audit eval id = %q, response eval id = %q", entry.EvalID, resp.EvalID)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/history", nil))
	if !strings.Contains(rec.Body.String(), resp.EvalID) {
		t.Errorf("history missing eval id %q: %s", resp.EvalID, rec.Body.String())
	}
}

func TestCalibrationEndpointAndReload(t *testing.T) {
	dir := t.TempDir()
	calPath := filepath.Join(dir, "calibration.yaml")

	s := newTestServer(t, Config{CalibrationPath: calPath})

	req := httptest.NewRequest(http.MethodGet, "/v1/calibration", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	firstBody := w.Body.String()

	// Write a calibration file and reload
	if err := os.WriteFile(calPath, []byte("breakpoints:\n  critical: 90\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.ReloadCalibration(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	w2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/v1/calibration", nil))
	if w2.Body.String() == firstBody {
		t.Error("calibration unchanged after reload")
	}
	if !strings.Contains(w2.Body.String(), "90") {
		t.Errorf("reloaded calibration missing override: %s", w2.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, Config{})

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
