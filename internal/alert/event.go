package alert

// AlertEvent is the payload sent to webhook endpoints after an evaluation.
type AlertEvent struct {
	Timestamp       string   `json:"timestamp"`
	EvalID          string   `json:"eval_id"`
	Bidders         int      `json:"bidders"`
	DueDiligence    float64  `json:"due_diligence"`
	CulturalFit     float64  `json:"cultural_fit"`
	Score           int      `json:"score"`
	Level           string   `json:"risk_level"`
	Recommendation  string   `json:"recommendation"`
	Drivers         []string `json:"drivers"`
	CalibrationHash string   `json:"calibration_hash"`
}
