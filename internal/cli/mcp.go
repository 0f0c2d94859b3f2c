package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	gamemcp "github.com/codrin-preda/gamemna/internal/mcp"
)

var (
	mcpCalibration string
	mcpAuditLog    string
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpCalibration, "calibration", "", "Path to calibration YAML")
	mcpCmd.Flags().StringVar(&mcpAuditLog, "audit-log", "", "Path to evaluation log JSONL file")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs gamemna as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes tools: evaluate, strategy, report.",
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := gamemcp.Config{
		CalibrationPath: mcpCalibration,
		AuditLogPath:    mcpAuditLog,
	}

	srv, err := gamemcp.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	fmt.Fprintln(os.Stderr, "gamemna MCP server running on stdio")

	return srv.Run(ctx)
}
