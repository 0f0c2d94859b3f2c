package scenario

// DealCase is one scoring test case within a scenario.
// Expectation fields are optional; omitted fields are not checked.
type DealCase struct {
	Bidders      int        `yaml:"bidders"`
	DueDiligence float64    `yaml:"due_diligence"`
	CulturalFit  float64    `yaml:"cultural_fit"`
	Expect       DealExpect `yaml:"expect"`
}

// DealExpect is the expected outcome of a deal case.
type DealExpect struct {
	Score   *int   `yaml:"score,omitempty"`
	Level   string `yaml:"level,omitempty"`
	Drivers *int   `yaml:"drivers,omitempty"` // expected driver count
}

// StrategyCase is one advisory test case. Expect is a strategy label,
// or "error" when the tags must be rejected.
type StrategyCase struct {
	Regulatory  string `yaml:"regulatory"`
	Competition string `yaml:"competition"`
	Expect      string `yaml:"expect"`
}

// Scenario is a named collection of scoring and advisory test cases.
type Scenario struct {
	Name       string         `yaml:"name"`
	Deals      []DealCase     `yaml:"deals"`
	Strategies []StrategyCase `yaml:"strategies"`
}

// CaseResult is the outcome of evaluating one test case.
type CaseResult struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"` // "deal" or "strategy"
	Passed   bool   `json:"passed"`
	Detail   string `json:"detail"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
