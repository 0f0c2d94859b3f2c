package alert

import "github.com/codrin-preda/gamemna/internal/model"

// AlertConfig defines a webhook alert destination.
type AlertConfig struct {
	URL      string            `yaml:"url"       json:"url"`
	Format   string            `yaml:"format"    json:"format"`    // "generic", "slack", "pagerduty"
	Events   []string          `yaml:"events"    json:"events"`    // exact levels, e.g. ["CRITICAL", "HIGH"]
	MinLevel string            `yaml:"min_level" json:"min_level"` // fire at this level and above
	Headers  map[string]string `yaml:"headers"   json:"headers"`
}

// matchesLevel reports whether the webhook should fire for a risk level.
// An exact Events entry wins; otherwise MinLevel covers that level and
// everything ranked above it.
func (c AlertConfig) matchesLevel(level string) bool {
	for _, e := range c.Events {
		if e == level {
			return true
		}
	}
	if c.MinLevel == "" {
		return false
	}
	rank, ok := model.LevelRank[model.RiskLevel(level)]
	minRank, minOK := model.LevelRank[model.RiskLevel(c.MinLevel)]
	return ok && minOK && rank >= minRank
}
