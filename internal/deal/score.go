package deal

import (
	"fmt"

	"github.com/codrin-preda/gamemna/internal/model"
)

// Fixed band edges for the three risk factors. The weights attached to
// each band live in Calibration; the edges themselves are structural.
const (
	biddersExtreme  = 6   // > 6 bidders: winner's curse near-certain
	biddersHigh     = 4   // > 4 bidders: overpayment probability > 90%
	biddersStandard = 2   // >= 2 bidders: competitive pressure exists
	diligenceOpaque = 0.3 // below this, bidding is effectively blind
	diligenceWeak   = 0.7 // below this, information signals are incomplete
	culturePoor     = 0.5 // below this, synergy leakage is expected
)

// Recommendation texts per risk level.
const (
	recWalkAway = "WALK AWAY. Expected Value is negative due to Winner's Curse or Integration Failure."
	recCaution  = "PROCEED WITH CAUTION. Require structural protections (e.g., lower bid, earn-outs)."
	recProceed  = "PROCEED. Deal fundamentals are sound within game-theoretic bounds."
)

// Contributions returns the raw pre-clamp score contribution of each
// factor: auction dynamics, information asymmetry, cultural integration.
func Contributions(in model.DealInput, cal *Calibration) (auction, info, culture int) {
	if cal == nil {
		cal = DefaultCalibration()
	}

	switch {
	case in.Bidders > biddersExtreme:
		auction = cal.Weights.AuctionExtreme
	case in.Bidders > biddersHigh:
		auction = cal.Weights.AuctionHigh
	case in.Bidders >= biddersStandard:
		auction = cal.Weights.AuctionStandard
	}

	switch {
	case in.DueDiligence < diligenceOpaque:
		info = cal.Weights.InfoOpaque
	case in.DueDiligence < diligenceWeak:
		info = cal.Weights.InfoIncomplete
	}

	switch {
	case in.CulturalFit < cal.CultureCriticalLimit:
		culture = cal.Weights.CultureCritical
	case in.CulturalFit < culturePoor:
		culture = cal.Weights.CulturePoor
	}

	return auction, info, culture
}

// Score computes the transaction risk report for one deal.
//
// Contributions are additive and evaluated in a fixed order
// (must not be changed — drivers are ordered to match):
//  1. Auction dynamics from bidder count
//  2. Information asymmetry from due-diligence quality
//  3. Cultural integration from cultural fit
//
// The function is total: it never validates inputs against their
// documented ranges and never panics. Out-of-range or NaN values fall
// through the threshold comparisons and the final clamp keeps the
// score inside [0,100]. A nil cal uses DefaultCalibration.
func Score(in model.DealInput, cal *Calibration) model.RiskReport {
	if cal == nil {
		cal = DefaultCalibration()
	}

	auction, info, culture := Contributions(in, cal)
	drivers := []string{}

	// 1. Auction dynamics
	switch {
	case in.Bidders > biddersExtreme:
		drivers = append(drivers, "Critical Risk: Extreme Competition (>6 Bidders) guarantees Winner's Curse.")
	case in.Bidders > biddersHigh:
		drivers = append(drivers, "High Risk: High Competition increases overpayment probability >90%.")
	case in.Bidders >= biddersStandard:
		drivers = append(drivers, "Moderate Risk: Standard Competitive Pressure.")
	}

	// 2. Information asymmetry (lower quality = higher risk)
	switch {
	case in.DueDiligence < diligenceOpaque:
		drivers = append(drivers, "Critical Risk: Opaque Information (Blind Bidding).")
	case in.DueDiligence < diligenceWeak:
		drivers = append(drivers, "Moderate Risk: Incomplete Information signals.")
	}

	// 3. Cultural integration (lower fit = higher risk)
	switch {
	case in.CulturalFit < cal.CultureCriticalLimit:
		drivers = append(drivers, fmt.Sprintf(
			"Critical Risk: Cultural Fit %v is below the viability threshold (%v).",
			in.CulturalFit, cal.CultureCriticalLimit))
	case in.CulturalFit < culturePoor:
		drivers = append(drivers, "High Risk: Poor Cultural Alignment suggests synergy leakage.")
	}

	score := clamp(auction + info + culture)
	level, rec := classify(score, cal)

	return model.RiskReport{
		Score:          score,
		Level:          level,
		Recommendation: rec,
		Drivers:        drivers,
	}
}

// clamp bounds a score to [0,100]. Contributions are non-negative with
// default weights, so only the top matters in practice; the low clamp
// covers calibrations with negative overrides.
func clamp(score int) int {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// classify maps a clamped score to a risk level and recommendation.
// Breakpoints are inclusive lower bounds.
func classify(score int, cal *Calibration) (model.RiskLevel, string) {
	switch {
	case score >= cal.Breakpoints.Critical:
		return model.LevelCritical, recWalkAway
	case score >= cal.Breakpoints.High:
		return model.LevelHigh, recCaution
	default:
		return model.LevelLow, recProceed
	}
}
