package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codrin-preda/gamemna/internal/audit"
)

var auditVerifyFormat string

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditVerifyCmd.Flags().StringVarP(&auditVerifyFormat, "format", "f", "text", "Output format (text|json)")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the evaluation log",
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify <log-file>",
	Short: "Verify the hash chain of an evaluation log",
	Long: "Reads a JSONL evaluation log and validates the SHA-256 hash chain.\n" +
		"Exit code 0 if the chain is intact, 1 if tampered or broken.",
	Args: cobra.ExactArgs(1),
	RunE: runAuditVerify,
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	result := audit.Verify(args[0])

	if auditVerifyFormat == "json" {
		out, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	} else if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: chain intact (%d entries)\n", result.Lines)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "BROKEN at line %d: %s\n", result.ErrorLine, result.Error)
	}

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
