package gamemna

import "github.com/codrin-preda/gamemna/internal/model"

// RiskLevel classifies the overall transaction risk.
type RiskLevel string

const (
	Low      RiskLevel = RiskLevel(model.LevelLow)
	High     RiskLevel = RiskLevel(model.LevelHigh)
	Critical RiskLevel = RiskLevel(model.LevelCritical)
)

// Deal describes one M&A scenario under evaluation.
type Deal struct {
	Bidders      int     // number of bidders competing for the target
	DueDiligence float64 // 0 (opaque) to 1 (transparent)
	CulturalFit  float64 // 0 (friction) to 1 (synergy)
}

// Report is the scored outcome for one Deal.
type Report struct {
	Score          int
	Level          RiskLevel
	Recommendation string
	Drivers        []string
}

// Advice is one entry from the fixed strategy table.
type Advice struct {
	Label string
	Text  string
}

// toInternalInput maps an SDK Deal to an internal model.DealInput.
func toInternalInput(d Deal) model.DealInput {
	return model.DealInput{
		Bidders:      d.Bidders,
		DueDiligence: d.DueDiligence,
		CulturalFit:  d.CulturalFit,
	}
}

// toReport maps an internal RiskReport to an SDK Report.
func toReport(r model.RiskReport) Report {
	return Report{
		Score:          r.Score,
		Level:          RiskLevel(r.Level),
		Recommendation: r.Recommendation,
		Drivers:        r.Drivers,
	}
}
