package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestRunScoresDealCases(t *testing.T) {
	s := &Scenario{
		Name: "baseline",
		Deals: []DealCase{
			{Bidders: 4, DueDiligence: 0.5, CulturalFit: 0.5,
				Expect: DealExpect{Score: intPtr(55), Level: "HIGH", Drivers: intPtr(3)}},
			{Bidders: 8, DueDiligence: 0.1, CulturalFit: 0.05,
				Expect: DealExpect{Score: intPtr(100), Level: "CRITICAL"}},
			{Bidders: 1, DueDiligence: 0.9, CulturalFit: 0.9,
				Expect: DealExpect{Score: intPtr(0), Level: "LOW", Drivers: intPtr(0)}},
		},
	}

	result := Run(s, nil)
	if result.Failed != 0 {
		t.Fatalf("expected all deal cases to pass, got %d failures: %+v", result.Failed, result.Cases)
	}
	if result.Passed != 3 {
		t.Errorf("passed = %d, want 3", result.Passed)
	}
}

func TestRunDetectsScoreMismatch(t *testing.T) {
	s := &Scenario{
		Name: "wrong",
		Deals: []DealCase{
			{Bidders: 4, DueDiligence: 0.5, CulturalFit: 0.5, Expect: DealExpect{Score: intPtr(10)}},
		},
	}

	result := Run(s, nil)
	if result.Failed != 1 {
		t.Fatalf("expected 1 failure, got %d", result.Failed)
	}
	if result.Cases[0].Passed {
		t.Error("case should have failed")
	}
}

func TestRunStrategyCases(t *testing.T) {
	s := &Scenario{
		Name: "strategies",
		Strategies: []StrategyCase{
			{Regulatory: "High", Competition: "High", Expect: "Preemptive Remedies"},
			{Regulatory: "High", Competition: "Low", Expect: "Negotiated Settlement"},
			{Regulatory: "Low", Competition: "High", Expect: "Aggressive Sealed Bid"},
			{Regulatory: "Low", Competition: "Low", Expect: "Low-Ball / Opportunistic"},
			{Regulatory: "Medium", Competition: "High", Expect: "error"},
		},
	}

	result := Run(s, nil)
	if result.Failed != 0 {
		t.Fatalf("expected all strategy cases to pass, got %d failures: %+v", result.Failed, result.Cases)
	}
}

func TestRunStrategyErrorIsNotASilentBranch(t *testing.T) {
	s := &Scenario{
		Name: "bad-tag",
		Strategies: []StrategyCase{
			// Expecting a real label for a bad tag must fail, not match a branch
			{Regulatory: "Medium", Competition: "High", Expect: "Preemptive Remedies"},
		},
	}

	result := Run(s, nil)
	if result.Failed != 1 {
		t.Fatalf("expected failure for bad tag with label expectation, got %+v", result)
	}
	if result.Cases[0].Actual != "error" {
		t.Errorf("actual = %q, want error", result.Cases[0].Actual)
	}
}

func TestLoadAndRunFromYAML(t *testing.T) {
	content := `name: file-scenario
deals:
  - bidders: 4
    due_diligence: 0.5
    cultural_fit: 0.5
    expect:
      score: 55
      level: HIGH
      drivers: 3
strategies:
  - regulatory: Low
    competition: Low
    expect: "Low-Ball / Opportunistic"
`
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	result, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatalf("load and run: %v", err)
	}
	if result.Failed != 0 {
		t.Fatalf("expected pass, got failures: %+v", result.Cases)
	}
	if result.File != path {
		t.Errorf("file = %s, want %s", result.File, path)
	}
}

func TestFormatTextReportsFailures(t *testing.T) {
	s := &Scenario{
		Name: "mixed",
		Deals: []DealCase{
			{Bidders: 1, DueDiligence: 0.9, CulturalFit: 0.9, Expect: DealExpect{Level: "LOW"}},
			{Bidders: 1, DueDiligence: 0.9, CulturalFit: 0.9, Expect: DealExpect{Level: "CRITICAL"}},
		},
	}

	out := FormatText([]*RunResult{Run(s, nil)})
	if !strings.Contains(out, "FAIL") {
		t.Errorf("expected FAIL marker in output:\n%s", out)
	}
	if !strings.Contains(out, "1 of 2 cases passed.") {
		t.Errorf("expected summary line in output:\n%s", out)
	}
}
