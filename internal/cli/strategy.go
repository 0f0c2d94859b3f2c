package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codrin-preda/gamemna/internal/deal"
)

var (
	stratRegulatory  string
	stratCompetition string
	stratFormat      string
)

func init() {
	rootCmd.AddCommand(strategyCmd)
	strategyCmd.Flags().StringVar(&stratRegulatory, "regulatory", "", "Regulatory scrutiny tier (Low|High)")
	strategyCmd.Flags().StringVar(&stratCompetition, "competition", "", "Competition intensity tier (Low|High)")
	strategyCmd.Flags().StringVarP(&stratFormat, "format", "f", "text", "Output format (text|json)")
	strategyCmd.MarkFlagRequired("regulatory")
	strategyCmd.MarkFlagRequired("competition")
}

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Recommend the optimal game-theoretic bidding strategy",
	Long: "Selects the optimal move from the 2x2 regulatory/competition decision table\n" +
		"by backward induction. Both tiers must be exactly \"Low\" or \"High\";\n" +
		"anything else is an input error, never a silently chosen branch.",
	RunE: runStrategy,
}

func runStrategy(cmd *cobra.Command, args []string) error {
	advice, err := deal.RecommendTags(stratRegulatory, stratCompetition)
	if err != nil {
		return err
	}

	switch stratFormat {
	case "json":
		out, err := json.MarshalIndent(advice, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), advice.Text)
	}

	return nil
}
