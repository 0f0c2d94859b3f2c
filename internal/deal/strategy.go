package deal

import "github.com/codrin-preda/gamemna/internal/model"

// Strategy labels for the 2x2 decision table.
const (
	LabelPreemptiveRemedies  = "Preemptive Remedies"
	LabelNegotiatedSettle    = "Negotiated Settlement"
	LabelAggressiveSealedBid = "Aggressive Sealed Bid"
	LabelLowBall             = "Low-Ball / Opportunistic"
)

// Advisory texts derived by backward induction from the four terminal
// outcomes. The texts are fixed; callers must receive them verbatim.
const (
	textPreemptiveRemedies = "STRATEGY: Preemptive Remedies (Subgame Perfect Equilibrium).\n" +
		"Logic: High competition + High Regulation creates a 'War of Attrition'.\n" +
		"Action: Offer divestitures (e.g., licensing) immediately to signal " +
		"cooperation and deter regulatory veto, mimicking Microsoft's 2023 strategy."

	textNegotiatedSettle = "STRATEGY: Negotiated Settlement.\n" +
		"Logic: With low competition, you are in a bilateral monopoly with the regulator.\n" +
		"Action: Do not bid aggressively. Focus on 'tit-for-tat' negotiation to clear hurdles."

	textAggressiveSealedBid = "STRATEGY: Aggressive Sealed Bid (The 'Bulldozer').\n" +
		"Logic: Classic Auction Theory applies. Regulatory veto is unlikely.\n" +
		"Action: Bid high early (Shock & Awe) to signal strength and force rivals " +
		"to fold, but ensure bid < (True Value - Integration Cost)."

	textLowBall = "STRATEGY: Low-Ball / Opportunistic.\n" +
		"Logic: You have leverage. No external threats exist.\n" +
		"Action: Bid near the target's reservation price to maximize surplus."
)

// Recommend selects the optimal game-theoretic move for a strategic
// context. Regulatory risk is checked first, then competition level.
// The context must already hold validated tiers; use RecommendTags for
// raw string input.
func Recommend(ctx model.StrategyContext) (model.StrategyAdvice, error) {
	if _, err := model.ParseTier("regulatory", string(ctx.Regulatory)); err != nil {
		return model.StrategyAdvice{}, err
	}
	if _, err := model.ParseTier("competition", string(ctx.Competition)); err != nil {
		return model.StrategyAdvice{}, err
	}

	if ctx.Regulatory == model.TierHigh {
		if ctx.Competition == model.TierHigh {
			return model.StrategyAdvice{Label: LabelPreemptiveRemedies, Text: textPreemptiveRemedies}, nil
		}
		return model.StrategyAdvice{Label: LabelNegotiatedSettle, Text: textNegotiatedSettle}, nil
	}

	if ctx.Competition == model.TierHigh {
		return model.StrategyAdvice{Label: LabelAggressiveSealedBid, Text: textAggressiveSealedBid}, nil
	}
	return model.StrategyAdvice{Label: LabelLowBall, Text: textLowBall}, nil
}

// RecommendTags validates the raw "Low"/"High" tags for both axes and
// returns the matching advisory. Unknown tags yield *model.UnknownTierError,
// never a silently chosen branch.
func RecommendTags(regulatory, competition string) (model.StrategyAdvice, error) {
	reg, err := model.ParseTier("regulatory", regulatory)
	if err != nil {
		return model.StrategyAdvice{}, err
	}
	comp, err := model.ParseTier("competition", competition)
	if err != nil {
		return model.StrategyAdvice{}, err
	}
	return Recommend(model.StrategyContext{Regulatory: reg, Competition: comp})
}
