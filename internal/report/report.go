// Package report assembles the strategy briefing artifact: the plain-text
// report a deal desk downloads, plus a JSON form for programmatic callers.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codrin-preda/gamemna/internal/deal"
	"github.com/codrin-preda/gamemna/internal/model"
)

// Briefing bundles everything one evaluation produced.
type Briefing struct {
	Input     model.DealInput       `json:"input"`
	Report    model.RiskReport      `json:"report"`
	Breakdown []FactorPoints        `json:"breakdown"`
	Advice    *model.StrategyAdvice `json:"advice,omitempty"`
}

// FactorPoints is one factor's contribution to the pre-clamp score.
type FactorPoints struct {
	Factor string `json:"factor"`
	Points int    `json:"points"`
}

// Breakdown computes the per-factor contributions for a deal input.
// The three factors always appear, in scoring order, zero when inactive.
func Breakdown(in model.DealInput, cal *deal.Calibration) []FactorPoints {
	auction, info, culture := deal.Contributions(in, cal)
	return []FactorPoints{
		{Factor: "Auction Dynamics", Points: auction},
		{Factor: "Info Asymmetry", Points: info},
		{Factor: "Cultural Constraints", Points: culture},
	}
}

// New builds a Briefing for an input. Advice may be nil when no
// strategic context was supplied.
func New(in model.DealInput, rep model.RiskReport, cal *deal.Calibration, advice *model.StrategyAdvice) Briefing {
	return Briefing{
		Input:     in,
		Report:    rep,
		Breakdown: Breakdown(in, cal),
		Advice:    advice,
	}
}

// FormatText renders the downloadable strategy briefing.
func FormatText(b Briefing) string {
	var sb strings.Builder

	sb.WriteString("M&A GAME THEORETIC RISK BRIEFING\n")
	sb.WriteString("--------------------------------\n")
	fmt.Fprintf(&sb, "Risk Score: %d/100\n", b.Report.Score)
	fmt.Fprintf(&sb, "Risk Level: %s\n", b.Report.Level)
	fmt.Fprintf(&sb, "Recommendation: %s\n\n", b.Report.Recommendation)

	fmt.Fprintf(&sb, "Inputs: bidders=%d due_diligence=%v cultural_fit=%v\n\n",
		b.Input.Bidders, b.Input.DueDiligence, b.Input.CulturalFit)

	sb.WriteString("RISK CONTRIBUTION:\n")
	for _, fp := range b.Breakdown {
		fmt.Fprintf(&sb, "  %-20s %d\n", fp.Factor, fp.Points)
	}
	sb.WriteString("\n")

	if b.Advice != nil {
		sb.WriteString("STRATEGIC ADVICE:\n")
		sb.WriteString(b.Advice.Text)
		sb.WriteString("\n\n")
	}

	sb.WriteString("KEY DRIVERS:\n")
	if len(b.Report.Drivers) == 0 {
		sb.WriteString("(no critical risk drivers identified at current settings)\n")
	} else {
		for _, d := range b.Report.Drivers {
			fmt.Fprintf(&sb, "- %s\n", d)
		}
	}

	sb.WriteString("\nGenerated by gamemna\n")
	return sb.String()
}

// FormatJSON renders the briefing as indented JSON.
func FormatJSON(b Briefing) (string, error) {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal briefing: %w", err)
	}
	return string(data), nil
}
