package deal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultCalibrationValues(t *testing.T) {
	cal := DefaultCalibration()

	if cal.Weights.AuctionExtreme != 50 || cal.Weights.AuctionHigh != 40 || cal.Weights.AuctionStandard != 20 {
		t.Errorf("unexpected auction weights: %+v", cal.Weights)
	}
	if cal.Weights.InfoOpaque != 30 || cal.Weights.InfoIncomplete != 15 {
		t.Errorf("unexpected info weights: %+v", cal.Weights)
	}
	if cal.Weights.CultureCritical != 50 || cal.Weights.CulturePoor != 20 {
		t.Errorf("unexpected culture weights: %+v", cal.Weights)
	}
	if cal.Breakpoints.High != 40 || cal.Breakpoints.Critical != 75 {
		t.Errorf("unexpected breakpoints: %+v", cal.Breakpoints)
	}
	if cal.CultureCriticalLimit != 0.12 {
		t.Errorf("culture critical limit = %v, want 0.12", cal.CultureCriticalLimit)
	}
}

func TestLoadCalibrationMissingFileReturnsDefaults(t *testing.T) {
	cal, err := LoadCalibration(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cal.Breakpoints.Critical != 75 {
		t.Errorf("expected default calibration, got %+v", cal)
	}
}

func TestLoadCalibrationPartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	content := "breakpoints:\n  critical: 80\nculture_critical_limit: 0.2\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cal, err := LoadCalibration(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cal.Breakpoints.Critical != 80 {
		t.Errorf("critical breakpoint = %d, want 80 from file", cal.Breakpoints.Critical)
	}
	if cal.CultureCriticalLimit != 0.2 {
		t.Errorf("culture critical limit = %v, want 0.2 from file", cal.CultureCriticalLimit)
	}
	// Unspecified fields keep their defaults
	if cal.Breakpoints.High != 40 {
		t.Errorf("high breakpoint = %d, want default 40", cal.Breakpoints.High)
	}
	if cal.Weights.AuctionExtreme != 50 {
		t.Errorf("auction extreme weight = %d, want default 50", cal.Weights.AuctionExtreme)
	}
}

func TestLoadCalibrationInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	if err := os.WriteFile(path, []byte("{{{not yaml"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCalibration(path); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoadCalibrationWithHashStableAcrossReads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calibration.yaml")
	if err := os.WriteFile(path, []byte("breakpoints:\n  high: 30\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, first, err := LoadCalibrationWithHash(path)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := LoadCalibrationWithHash(path)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("hash changed across reads: %s vs %s", first, second)
	}
	if !strings.HasPrefix(first, "sha256:") {
		t.Errorf("hash missing sha256 prefix: %s", first)
	}
}

func TestDefaultCalibrationYAMLRoundTrips(t *testing.T) {
	var cal Calibration
	if err := yaml.Unmarshal([]byte(DefaultCalibrationYAML()), &cal); err != nil {
		t.Fatalf("template does not parse: %v", err)
	}

	want := DefaultCalibration()
	if cal.Weights != want.Weights {
		t.Errorf("template weights %+v differ from defaults %+v", cal.Weights, want.Weights)
	}
	if cal.Breakpoints != want.Breakpoints {
		t.Errorf("template breakpoints %+v differ from defaults %+v", cal.Breakpoints, want.Breakpoints)
	}
	if cal.CultureCriticalLimit != want.CultureCriticalLimit {
		t.Errorf("template culture limit %v differs from default %v", cal.CultureCriticalLimit, want.CultureCriticalLimit)
	}
}
