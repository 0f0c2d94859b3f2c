package mcp

import (
	"context"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codrin-preda/gamemna/internal/audit"
	"github.com/codrin-preda/gamemna/internal/deal"
	"github.com/codrin-preda/gamemna/internal/model"
	"github.com/codrin-preda/gamemna/internal/report"
	"github.com/google/uuid"
)

// --- Input/Output types ---

// EvaluateInput defines parameters for the gamemna_evaluate tool.
type EvaluateInput struct {
	Bidders      int     `json:"bidders" jsonschema:"number of bidders competing for the target (1-10)"`
	DueDiligence float64 `json:"due_diligence" jsonschema:"due-diligence quality, 0 (opaque) to 1 (transparent)"`
	CulturalFit  float64 `json:"cultural_fit" jsonschema:"cultural fit score, 0 (friction) to 1 (synergy)"`
}

// EvaluateOutput contains the risk report.
type EvaluateOutput struct {
	Score          int      `json:"score"`
	Level          string   `json:"risk_level"`
	Recommendation string   `json:"recommendation"`
	Drivers        []string `json:"drivers"`
}

// StrategyInput defines parameters for the gamemna_strategy tool.
type StrategyInput struct {
	Regulatory  string `json:"regulatory_risk" jsonschema:"regulatory scrutiny tier, exactly Low or High"`
	Competition string `json:"competition_level" jsonschema:"competition intensity tier, exactly Low or High"`
}

// StrategyOutput contains the advisory, or the input error.
type StrategyOutput struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

// ReportInput defines parameters for the gamemna_report tool.
type ReportInput struct {
	Bidders      int     `json:"bidders" jsonschema:"number of bidders competing for the target (1-10)"`
	DueDiligence float64 `json:"due_diligence" jsonschema:"due-diligence quality, 0 (opaque) to 1 (transparent)"`
	CulturalFit  float64 `json:"cultural_fit" jsonschema:"cultural fit score, 0 (friction) to 1 (synergy)"`
	Regulatory   string  `json:"regulatory_risk,omitempty" jsonschema:"regulatory scrutiny tier, exactly Low or High"`
	Competition  string  `json:"competition_level,omitempty" jsonschema:"competition intensity tier, exactly Low or High"`
}

// ReportOutput contains the rendered briefing, or the input error.
type ReportOutput struct {
	Briefing string `json:"briefing,omitempty"`
	Error    string `json:"error,omitempty"`
}

// --- Handlers ---

func (s *Server) handleEvaluate(ctx context.Context, req *mcpsdk.CallToolRequest, input EvaluateInput) (*mcpsdk.CallToolResult, EvaluateOutput, error) {
	in := model.DealInput{
		Bidders:      input.Bidders,
		DueDiligence: input.DueDiligence,
		CulturalFit:  input.CulturalFit,
	}
	rep := deal.Score(in, s.cal)

	if err := s.record(in, rep); err != nil {
		return nil, EvaluateOutput{}, err
	}

	return nil, EvaluateOutput{
		Score:          rep.Score,
		Level:          string(rep.Level),
		Recommendation: rep.Recommendation,
		Drivers:        rep.Drivers,
	}, nil
}

func (s *Server) handleStrategy(ctx context.Context, req *mcpsdk.CallToolRequest, input StrategyInput) (*mcpsdk.CallToolResult, StrategyOutput, error) {
	advice, err := deal.RecommendTags(input.Regulatory, input.Competition)
	if err != nil {
		var ute *model.UnknownTierError
		if errors.As(err, &ute) {
			return &mcpsdk.CallToolResult{IsError: true}, StrategyOutput{Error: err.Error()}, nil
		}
		return nil, StrategyOutput{}, err
	}

	return nil, StrategyOutput{Label: advice.Label, Text: advice.Text}, nil
}

func (s *Server) handleReport(ctx context.Context, req *mcpsdk.CallToolRequest, input ReportInput) (*mcpsdk.CallToolResult, ReportOutput, error) {
	in := model.DealInput{
		Bidders:      input.Bidders,
		DueDiligence: input.DueDiligence,
		CulturalFit:  input.CulturalFit,
	}
	rep := deal.Score(in, s.cal)

	var advice *model.StrategyAdvice
	if input.Regulatory != "" || input.Competition != "" {
		a, err := deal.RecommendTags(input.Regulatory, input.Competition)
		if err != nil {
			var ute *model.UnknownTierError
			if errors.As(err, &ute) {
				return &mcpsdk.CallToolResult{IsError: true}, ReportOutput{Error: err.Error()}, nil
			}
			return nil, ReportOutput{}, err
		}
		advice = &a
	}

	if err := s.record(in, rep); err != nil {
		return nil, ReportOutput{}, err
	}

	briefing := report.New(in, rep, s.cal, advice)
	return nil, ReportOutput{Briefing: report.FormatText(briefing)}, nil
}

// record appends the evaluation to the audit log when one is configured.
func (s *Server) record(in model.DealInput, rep model.RiskReport) error {
	if s.auditLog == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auditLog.Record(audit.Entry{
		EvalID: uuid.NewString(),
		Input: audit.EntryInput{
			Bidders:      in.Bidders,
			DueDiligence: in.DueDiligence,
			CulturalFit:  in.CulturalFit,
		},
		Score:           rep.Score,
		Level:           string(rep.Level),
		Recommendation:  rep.Recommendation,
		CalibrationHash: s.calibrationHash,
	})
}
