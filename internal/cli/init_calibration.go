package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codrin-preda/gamemna/internal/deal"
)

var (
	initCalibOutput string
	initCalibForce  bool
)

func init() {
	rootCmd.AddCommand(initCalibrationCmd)
	initCalibrationCmd.Flags().StringVarP(&initCalibOutput, "output", "o", "", "Output path (default ~/.gamemna/calibration.yaml)")
	initCalibrationCmd.Flags().BoolVar(&initCalibForce, "force", false, "Overwrite an existing file")
}

var initCalibrationCmd = &cobra.Command{
	Use:   "init-calibration",
	Short: "Write a commented default calibration file",
	RunE:  runInitCalibration,
}

func runInitCalibration(cmd *cobra.Command, args []string) error {
	path := initCalibOutput
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, ".gamemna", "calibration.yaml")
	}

	if _, err := os.Stat(path); err == nil && !initCalibForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(deal.DefaultCalibrationYAML()), 0600); err != nil {
		return fmt.Errorf("write calibration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
