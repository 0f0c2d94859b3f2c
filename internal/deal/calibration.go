package deal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/codrin-preda/gamemna/internal/alert"
)

// Weights holds the additive score contribution of each risk band.
type Weights struct {
	AuctionExtreme  int `yaml:"auction_extreme"`
	AuctionHigh     int `yaml:"auction_high"`
	AuctionStandard int `yaml:"auction_standard"`
	InfoOpaque      int `yaml:"info_opaque"`
	InfoIncomplete  int `yaml:"info_incomplete"`
	CultureCritical int `yaml:"culture_critical"`
	CulturePoor     int `yaml:"culture_poor"`
}

// Breakpoints defines the inclusive lower bounds of the HIGH and
// CRITICAL risk levels.
type Breakpoints struct {
	High     int `yaml:"high"`
	Critical int `yaml:"critical"`
}

// Calibration holds all tunable scoring parameters plus alert routing.
// Defaults come from qualitative case-study findings, not fitted models.
type Calibration struct {
	Weights              Weights             `yaml:"weights"`
	Breakpoints          Breakpoints         `yaml:"breakpoints"`
	CultureCriticalLimit float64             `yaml:"culture_critical_limit"`
	Alerts               []alert.AlertConfig `yaml:"alerts"`
}

// DefaultCalibration returns the built-in calibration.
func DefaultCalibration() *Calibration {
	return &Calibration{
		Weights: Weights{
			AuctionExtreme:  50,
			AuctionHigh:     40,
			AuctionStandard: 20,
			InfoOpaque:      30,
			InfoIncomplete:  15,
			CultureCritical: 50,
			CulturePoor:     20,
		},
		Breakpoints: Breakpoints{
			High:     40,
			Critical: 75,
		},
		CultureCriticalLimit: 0.12,
	}
}

// defaultPath returns ~/.gamemna/calibration.yaml, or "" if the home
// directory cannot be determined.
func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gamemna", "calibration.yaml")
}

// LoadCalibration loads calibration from a YAML file.
// Empty path falls back to ~/.gamemna/calibration.yaml.
// Missing file returns defaults. Invalid YAML returns an error.
func LoadCalibration(path string) (*Calibration, error) {
	cal, _, err := LoadCalibrationWithHash(path)
	return cal, err
}

// LoadCalibrationWithHash loads calibration and returns the SHA-256 hash
// of the raw YAML bytes, for stamping into audit entries. When no file
// exists (defaults used), the hash is the SHA-256 of empty input.
func LoadCalibrationWithHash(path string) (*Calibration, string, error) {
	if path == "" {
		path = defaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if path == "" || os.IsNotExist(err) {
			h := sha256.Sum256(nil)
			return DefaultCalibration(), "sha256:" + hex.EncodeToString(h[:]), nil
		}
		return nil, "", fmt.Errorf("failed to read calibration: %w", err)
	}

	h := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(h[:])

	// Start with defaults, YAML overwrites only specified fields
	cal := DefaultCalibration()
	if err := yaml.Unmarshal(data, cal); err != nil {
		return nil, "", fmt.Errorf("failed to parse calibration: %w", err)
	}

	return cal, hash, nil
}

// DefaultCalibrationYAML returns a commented YAML string for init-calibration.
func DefaultCalibrationYAML() string {
	return `# gamemna calibration
# Generated by: gamemna init-calibration
#
# Scoring order (cannot be changed):
#   1. Auction dynamics (bidder count)
#   2. Information asymmetry (due-diligence quality)
#   3. Cultural integration (cultural fit)
# Contributions are additive; the total is clamped to [0,100].

# Score contribution per risk band.
weights:
  auction_extreme: 50   # bidders > 6
  auction_high: 40      # bidders > 4
  auction_standard: 20  # bidders >= 2
  info_opaque: 30       # due diligence < 0.3
  info_incomplete: 15   # due diligence < 0.7
  culture_critical: 50  # cultural fit below culture_critical_limit
  culture_poor: 20      # cultural fit < 0.5

# Risk level breakpoints (inclusive lower bounds).
# score >= critical -> CRITICAL (walk away)
# score >= high     -> HIGH (proceed with caution)
# otherwise         -> LOW (proceed)
breakpoints:
  high: 40
  critical: 75

# Viability threshold below which cultural fit destroys the deal
# regardless of deal logic.
culture_critical_limit: 0.12

# Webhook alerts fired after evaluation. Events match risk levels
# exactly; min_level matches that level and above.
# alerts:
#   - url: https://hooks.example.com/manda
#     format: generic   # generic | slack | pagerduty
#     events: ["CRITICAL"]
#     min_level: HIGH
`
}
