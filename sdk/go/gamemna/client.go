package gamemna

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/codrin-preda/gamemna/internal/audit"
	"github.com/codrin-preda/gamemna/internal/deal"
	"github.com/codrin-preda/gamemna/internal/model"
	"github.com/codrin-preda/gamemna/internal/report"
)

// Client holds the loaded calibration for in-process evaluation.
// Safe for concurrent use: scoring is pure and the calibration is
// immutable after New.
type Client struct {
	cfg             clientConfig
	cal             *deal.Calibration
	calibrationHash string
	auditLog        *audit.Log
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	var cfg clientConfig
	for _, o := range opts {
		o(&cfg)
	}

	cal, hash, err := deal.LoadCalibrationWithHash(cfg.calibrationPath)
	if err != nil {
		return nil, fmt.Errorf("gamemna: failed to load calibration: %w", err)
	}

	c := &Client{
		cfg:             cfg,
		cal:             cal,
		calibrationHash: hash,
	}

	if cfg.auditLogPath != "" {
		c.auditLog, err = audit.Open(cfg.auditLogPath)
		if err != nil {
			return nil, fmt.Errorf("gamemna: failed to open audit log: %w", err)
		}
	}

	return c, nil
}

// Evaluate scores a deal scenario. Never fails: the scorer is total
// over the numeric domain.
func (c *Client) Evaluate(d Deal) Report {
	in := toInternalInput(d)
	rep := deal.Score(in, c.cal)

	if c.auditLog != nil {
		// Audit failure must not change the evaluation outcome.
		_ = c.auditLog.Record(audit.Entry{
			EvalID: uuid.NewString(),
			Input: audit.EntryInput{
				Bidders:      in.Bidders,
				DueDiligence: in.DueDiligence,
				CulturalFit:  in.CulturalFit,
			},
			Score:           rep.Score,
			Level:           string(rep.Level),
			Recommendation:  rep.Recommendation,
			CalibrationHash: c.calibrationHash,
		})
	}

	return toReport(rep)
}

// Strategy returns the advisory for a regulatory/competition context.
// Both tags must be exactly "Low" or "High"; anything else returns an
// error, never a silently chosen branch.
func (c *Client) Strategy(regulatory, competition string) (Advice, error) {
	advice, err := deal.RecommendTags(regulatory, competition)
	if err != nil {
		return Advice{}, err
	}
	return Advice{Label: advice.Label, Text: advice.Text}, nil
}

// ReportText renders the plain-text strategy briefing for a deal,
// optionally combined with a strategic context. Pass empty tags to
// omit the advisory section.
func (c *Client) ReportText(d Deal, regulatory, competition string) (string, error) {
	in := toInternalInput(d)
	rep := deal.Score(in, c.cal)

	var advice *model.StrategyAdvice
	if regulatory != "" || competition != "" {
		a, err := deal.RecommendTags(regulatory, competition)
		if err != nil {
			return "", err
		}
		advice = &a
	}

	return report.FormatText(report.New(in, rep, c.cal, advice)), nil
}

// Close releases the audit log if one is configured.
func (c *Client) Close() error {
	if c.auditLog != nil {
		return c.auditLog.Close()
	}
	return nil
}
