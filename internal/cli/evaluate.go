package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/codrin-preda/gamemna/internal/alert"
	"github.com/codrin-preda/gamemna/internal/audit"
	"github.com/codrin-preda/gamemna/internal/deal"
	"github.com/codrin-preda/gamemna/internal/history"
	"github.com/codrin-preda/gamemna/internal/model"
	"github.com/codrin-preda/gamemna/internal/report"
)

var (
	evalBidders     int
	evalDiligence   float64
	evalCulture     float64
	evalRegulatory  string
	evalCompetition string
	evalCalibration string
	evalFormat      string
	evalAuditLog    string
	evalSave        bool
	evalHistoryPath string
)

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().IntVar(&evalBidders, "bidders", 4, "Number of bidders competing for the target (1-10)")
	evaluateCmd.Flags().Float64Var(&evalDiligence, "diligence", 0.5, "Due-diligence quality, 0 (opaque) to 1 (transparent)")
	evaluateCmd.Flags().Float64Var(&evalCulture, "culture", 0.5, "Cultural fit score, 0 (friction) to 1 (synergy)")
	evaluateCmd.Flags().StringVar(&evalRegulatory, "regulatory", "", "Regulatory scrutiny tier (Low|High), optional")
	evaluateCmd.Flags().StringVar(&evalCompetition, "competition", "", "Competition intensity tier (Low|High), optional")
	evaluateCmd.Flags().StringVar(&evalCalibration, "calibration", "", "Path to calibration YAML")
	evaluateCmd.Flags().StringVarP(&evalFormat, "format", "f", "text", "Output format (text|json)")
	evaluateCmd.Flags().StringVar(&evalAuditLog, "audit-log", "", "Path to evaluation log JSONL file")
	evaluateCmd.Flags().BoolVar(&evalSave, "save", false, "Persist the evaluation to the history store")
	evaluateCmd.Flags().StringVar(&evalHistoryPath, "history-db", "", "Path to history database (default ~/.gamemna/history.db)")
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score the transaction risk of a deal scenario",
	Long: "Computes the 0-100 transaction risk score, risk level, and recommendation\n" +
		"for a deal scenario. When --regulatory and --competition are given, the\n" +
		"strategy briefing includes the game-tree advisory.",
	RunE: runEvaluate,
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cal, hash, err := deal.LoadCalibrationWithHash(evalCalibration)
	if err != nil {
		return fmt.Errorf("load calibration: %w", err)
	}

	in := model.DealInput{
		Bidders:      evalBidders,
		DueDiligence: evalDiligence,
		CulturalFit:  evalCulture,
	}
	rep := deal.Score(in, cal)

	var advice *model.StrategyAdvice
	if evalRegulatory != "" || evalCompetition != "" {
		a, err := deal.RecommendTags(evalRegulatory, evalCompetition)
		if err != nil {
			return err
		}
		advice = &a
	}

	evalID := uuid.NewString()

	if evalAuditLog != "" {
		log, err := audit.Open(evalAuditLog)
		if err != nil {
			return err
		}
		defer log.Close()

		entry := audit.Entry{
			EvalID: evalID,
			Input: audit.EntryInput{
				Bidders:      in.Bidders,
				DueDiligence: in.DueDiligence,
				CulturalFit:  in.CulturalFit,
			},
			Score:           rep.Score,
			Level:           string(rep.Level),
			Recommendation:  rep.Recommendation,
			CalibrationHash: hash,
		}
		if err := log.Record(entry); err != nil {
			return err
		}
	}

	if evalSave {
		store, err := history.Open(evalHistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(evalID, in, rep, hash); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved evaluation %s\n", evalID)
	}

	if dispatcher := alert.NewDispatcher(cal.Alerts); dispatcher != nil {
		// One-shot process: wait out in-flight webhook posts before exit.
		defer dispatcher.Flush()
		dispatcher.Dispatch(alert.AlertEvent{
			Timestamp:       time.Now().UTC().Format(audit.TimestampFormat),
			EvalID:          evalID,
			Bidders:         in.Bidders,
			DueDiligence:    in.DueDiligence,
			CulturalFit:     in.CulturalFit,
			Score:           rep.Score,
			Level:           string(rep.Level),
			Recommendation:  rep.Recommendation,
			Drivers:         rep.Drivers,
			CalibrationHash: hash,
		})
	}

	briefing := report.New(in, rep, cal, advice)

	switch evalFormat {
	case "json":
		out, err := report.FormatJSON(briefing)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	default:
		fmt.Fprint(cmd.OutOrStdout(), report.FormatText(briefing))
	}

	return nil
}
