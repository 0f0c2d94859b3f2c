package history

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/codrin-preda/gamemna/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := model.DealInput{Bidders: 4, DueDiligence: 0.5, CulturalFit: 0.5}
	rep := model.RiskReport{
		Score:          55,
		Level:          model.LevelHigh,
		Recommendation: "PROCEED WITH CAUTION. Require structural protections (e.g., lower bid, earn-outs).",
		Drivers: []string{
			"Moderate Risk: Standard Competitive Pressure.",
			"Moderate Risk: Incomplete Information signals.",
			"High Risk: Poor Cultural Alignment suggests synergy leakage.",
		},
	}

	const id = "eval-roundtrip"
	if err := s.Save(id, in, rep, "sha256:abc"); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec, err := s.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if rec.ID != id {
		t.Errorf("id = %q, want %q", rec.ID, id)
	}
	if rec.Input != in {
		t.Errorf("input = %+v, want %+v", rec.Input, in)
	}
	if rec.Report.Score != rep.Score || rec.Report.Level != rep.Level {
		t.Errorf("report = %+v, want %+v", rec.Report, rep)
	}
	if !reflect.DeepEqual(rec.Report.Drivers, rep.Drivers) {
		t.Errorf("drivers = %v, want %v", rec.Report.Drivers, rep.Drivers)
	}
	if rec.CalibrationHash != "sha256:abc" {
		t.Errorf("calibration hash = %s", rec.CalibrationHash)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestGetUnknownID(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get("no-such-id"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)

	rep := model.RiskReport{Score: 0, Level: model.LevelLow, Recommendation: "ok", Drivers: []string{}}
	for i := 1; i <= 5; i++ {
		if err := s.Save(fmt.Sprintf("eval-%d", i), model.DealInput{Bidders: i}, rep, "sha256:x"); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	records, err := s.List(3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("list returned %d records, want 3", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Errorf("records not sorted newest first")
		}
	}
}

func TestListEmptyStore(t *testing.T) {
	s := newTestStore(t)
	records, err := s.List(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty list, got %d records", len(records))
	}
}
