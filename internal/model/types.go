package model

import "fmt"

// RiskLevel classifies the overall transaction risk.
type RiskLevel string

const (
	LevelLow      RiskLevel = "LOW"
	LevelHigh     RiskLevel = "HIGH"
	LevelCritical RiskLevel = "CRITICAL"
)

// LevelRank maps risk levels to a comparable integer for ordering and
// at-least-this-severe threshold checks.
var LevelRank = map[RiskLevel]int{
	LevelLow:      0,
	LevelHigh:     1,
	LevelCritical: 2,
}

// Tier is a qualitative strategic-context rating. The tags are
// case-sensitive: only "Low" and "High" are recognized.
type Tier string

const (
	TierLow  Tier = "Low"
	TierHigh Tier = "High"
)

// UnknownTierError reports a strategic-context tag outside {"Low","High"}.
// It is a distinct error type so callers can never confuse an input error
// with a legitimate advisory string.
type UnknownTierError struct {
	Axis  string // "regulatory" or "competition"
	Value string
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("unrecognized %s tier %q (want \"Low\" or \"High\")", e.Axis, e.Value)
}

// ParseTier validates a strategic-context tag for the given axis.
func ParseTier(axis, value string) (Tier, error) {
	switch Tier(value) {
	case TierLow, TierHigh:
		return Tier(value), nil
	default:
		return "", &UnknownTierError{Axis: axis, Value: value}
	}
}

// DealInput describes one M&A scenario under evaluation.
// The UI constrains Bidders to [1,10] and the two quality scores to [0,1];
// the scorer stays total over the whole numeric domain regardless.
type DealInput struct {
	Bidders      int     `json:"bidders"`
	DueDiligence float64 `json:"due_diligence"`
	CulturalFit  float64 `json:"cultural_fit"`
}

// RiskReport is the scored outcome for one DealInput. Constructed once,
// never mutated.
type RiskReport struct {
	Score          int       `json:"score"`
	Level          RiskLevel `json:"risk_level"`
	Recommendation string    `json:"recommendation"`
	Drivers        []string  `json:"drivers"`
}

// StrategyContext is the qualitative 2x2 context for strategy selection.
type StrategyContext struct {
	Regulatory  Tier `json:"regulatory_risk"`
	Competition Tier `json:"competition_level"`
}

// StrategyAdvice is one entry from the fixed strategy table.
type StrategyAdvice struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}
