package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codrin-preda/gamemna/internal/deal"
	"github.com/codrin-preda/gamemna/internal/model"
)

// Run evaluates all cases in a scenario against the given calibration.
// Each case is independent — scoring is pure, so no state is shared.
func Run(s *Scenario, cal *deal.Calibration) *RunResult {
	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Deals) + len(s.Strategies),
	}

	for i, c := range s.Deals {
		in := model.DealInput{
			Bidders:      c.Bidders,
			DueDiligence: c.DueDiligence,
			CulturalFit:  c.CulturalFit,
		}
		rep := deal.Score(in, cal)

		cr := CaseResult{
			Index:  i + 1,
			Kind:   "deal",
			Detail: fmt.Sprintf("bidders=%d dd=%v fit=%v", c.Bidders, c.DueDiligence, c.CulturalFit),
			Passed: true,
		}

		var mismatches []string
		if c.Expect.Score != nil && rep.Score != *c.Expect.Score {
			mismatches = append(mismatches, fmt.Sprintf("score %d != %d", rep.Score, *c.Expect.Score))
		}
		if c.Expect.Level != "" && string(rep.Level) != c.Expect.Level {
			mismatches = append(mismatches, fmt.Sprintf("level %s != %s", rep.Level, c.Expect.Level))
		}
		if c.Expect.Drivers != nil && len(rep.Drivers) != *c.Expect.Drivers {
			mismatches = append(mismatches, fmt.Sprintf("drivers %d != %d", len(rep.Drivers), *c.Expect.Drivers))
		}

		cr.Expected = formatDealExpect(c.Expect)
		cr.Actual = fmt.Sprintf("score=%d level=%s drivers=%d", rep.Score, rep.Level, len(rep.Drivers))
		if len(mismatches) > 0 {
			cr.Passed = false
			cr.Actual = cr.Actual + " (" + mismatches[0] + ")"
		}

		record(result, cr)
	}

	for i, c := range s.Strategies {
		cr := CaseResult{
			Index:    len(s.Deals) + i + 1,
			Kind:     "strategy",
			Detail:   fmt.Sprintf("regulatory=%s competition=%s", c.Regulatory, c.Competition),
			Expected: c.Expect,
		}

		advice, err := deal.RecommendTags(c.Regulatory, c.Competition)
		switch {
		case err != nil:
			cr.Actual = "error"
			var ute *model.UnknownTierError
			cr.Passed = c.Expect == "error" && errors.As(err, &ute)
		default:
			cr.Actual = advice.Label
			cr.Passed = advice.Label == c.Expect
		}

		record(result, cr)
	}

	return result
}

func record(result *RunResult, cr CaseResult) {
	if cr.Passed {
		result.Passed++
	} else {
		result.Failed++
	}
	result.Cases = append(result.Cases, cr)
}

func formatDealExpect(e DealExpect) string {
	out := ""
	if e.Score != nil {
		out += fmt.Sprintf("score=%d ", *e.Score)
	}
	if e.Level != "" {
		out += fmt.Sprintf("level=%s ", e.Level)
	}
	if e.Drivers != nil {
		out += fmt.Sprintf("drivers=%d", *e.Drivers)
	}
	if out == "" {
		return "(no expectations)"
	}
	return out
}

// LoadAndRun loads a scenario YAML file, loads the calibration, and runs.
func LoadAndRun(path, calibrationPath string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	cal, err := deal.LoadCalibration(calibrationPath)
	if err != nil {
		return nil, fmt.Errorf("load calibration: %w", err)
	}

	result := Run(&s, cal)
	result.File = path

	return result, nil
}
