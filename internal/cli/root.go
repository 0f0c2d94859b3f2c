package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gamemna",
	Short: "Game-theoretic M&A risk analyzer",
	Long: "Scores the transaction risk of a merger/acquisition scenario from auction\n" +
		"dynamics, information asymmetry, and cultural integration constraints, and\n" +
		"recommends the optimal bidding strategy by backward induction.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
