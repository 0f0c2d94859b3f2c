package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/codrin-preda/gamemna/internal/history"
)

var (
	historyLimit  int
	historyFormat string
	historyPath   string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of evaluations to list")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "Output format (text|json)")
	historyCmd.Flags().StringVar(&historyPath, "history-db", "", "Path to history database (default ~/.gamemna/history.db)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past evaluations, newest first",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(historyLimit)
	if err != nil {
		return err
	}

	if historyFormat == "json" {
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No evaluations recorded.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s %3d/100  bidders=%d dd=%v fit=%v  (%s)\n",
			r.ID[:8], r.Report.Level, r.Report.Score,
			r.Input.Bidders, r.Input.DueDiligence, r.Input.CulturalFit,
			humanize.Time(r.CreatedAt))
	}

	return nil
}
