package audit

// EntryInput is the flattened deal input recorded in each audit entry.
type EntryInput struct {
	Bidders      int     `json:"bidders"`
	DueDiligence float64 `json:"due_diligence"`
	CulturalFit  float64 `json:"cultural_fit"`
}

// Entry is one line in the hash-chained JSONL evaluation log.
// All fields are structs (no map[string]any) to guarantee deterministic
// json.Marshal field order for reproducible hashing.
type Entry struct {
	Timestamp       string     `json:"ts"`
	EvalID          string     `json:"eval_id"`
	Input           EntryInput `json:"input"`
	Score           int        `json:"score"`
	Level           string     `json:"risk_level"`
	Recommendation  string     `json:"recommendation"`
	CalibrationHash string     `json:"calibration_hash"`
	PrevHash        string     `json:"prev_hash"`
}
