// Package gamemna provides in-process M&A risk scoring for Go programs.
// It evaluates the deterministic transaction risk score (auction dynamics,
// information asymmetry, cultural integration) and the backward-induction
// strategy table without spawning a subprocess.
//
// Usage:
//
//	client, err := gamemna.New(gamemna.WithCalibration("calibration.yaml"))
//	rep := client.Evaluate(gamemna.Deal{Bidders: 4, DueDiligence: 0.5, CulturalFit: 0.5})
//	advice, err := client.Strategy("High", "High")
//
// The SDK links directly against internal packages for zero-subprocess
// overhead. External users import github.com/codrin-preda/gamemna/sdk/go/gamemna.
package gamemna
