package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codrin-preda/gamemna/internal/server"
)

var (
	servePort        int
	serveCalibration string
	serveAuditLog    string
	serveHistory     bool
	serveHistoryPath string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "HTTP listen port")
	serveCmd.Flags().StringVar(&serveCalibration, "calibration", "", "Path to calibration YAML")
	serveCmd.Flags().StringVar(&serveAuditLog, "audit-log", "", "Path to evaluation log JSONL file")
	serveCmd.Flags().BoolVar(&serveHistory, "history", false, "Enable the history store")
	serveCmd.Flags().StringVar(&serveHistoryPath, "history-db", "", "Path to history database (default ~/.gamemna/history.db)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP evaluation server",
	Long: "Runs gamemna as a JSON HTTP API for desk frontends.\n" +
		"Supports hot-reload of the calibration file.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := server.Config{
		Port:            servePort,
		CalibrationPath: serveCalibration,
		AuditLogPath:    serveAuditLog,
		HistoryPath:     serveHistoryPath,
		EnableHistory:   serveHistory,
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	// Start hot-reload watcher for the calibration file
	reloader, err := server.NewReloader(srv, []string{serveCalibration})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: hot-reload disabled: %v\n", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if reloader != nil {
		go reloader.Run(ctx)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down evaluation server...")
		cancel()
	}()

	fmt.Fprintf(os.Stderr, "gamemna evaluation server listening on :%d\n", servePort)
	if serveCalibration != "" {
		fmt.Fprintf(os.Stderr, "Calibration: %s (hot-reload enabled)\n", serveCalibration)
	}
	fmt.Fprintln(os.Stderr)

	return srv.Start(ctx)
}
