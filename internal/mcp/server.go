// Package mcp exposes the analyzer as an MCP (Model Context Protocol)
// tool server over stdio, so agent frontends can score deals and fetch
// strategy advisories directly.
package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codrin-preda/gamemna/internal/audit"
	"github.com/codrin-preda/gamemna/internal/deal"
)

const serverVersion = "0.1.0"

// Config holds MCP server configuration.
type Config struct {
	CalibrationPath string
	AuditLogPath    string
}

// Server wraps the MCP SDK server around the deal analyzer.
type Server struct {
	mcpServer       *mcpsdk.Server
	cal             *deal.Calibration
	calibrationHash string
	auditLog        *audit.Log
	mu              sync.Mutex
}

// New creates an MCP server with loaded calibration and tools.
func New(cfg Config) (*Server, error) {
	cal, hash, err := deal.LoadCalibrationWithHash(cfg.CalibrationPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load calibration: %w", err)
	}

	s := &Server{
		cal:             cal,
		calibrationHash: hash,
	}

	if cfg.AuditLogPath != "" {
		s.auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "gamemna",
			Version: serverVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// registerTools adds all analyzer tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gamemna_evaluate",
		Description: "Score the transaction risk of an M&A scenario from bidder count, due-diligence quality, and cultural fit. Returns score (0-100), risk level, recommendation, and risk drivers.",
	}, s.handleEvaluate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gamemna_strategy",
		Description: "Recommend the optimal game-theoretic bidding strategy for a regulatory/competition context. Both tiers must be exactly \"Low\" or \"High\".",
	}, s.handleStrategy)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "gamemna_report",
		Description: "Produce a plain-text strategy briefing combining the risk score and the strategic advisory for a full deal scenario.",
	}, s.handleReport)
}
