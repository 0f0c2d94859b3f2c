package alert

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatPayload builds the webhook body for the given format.
func FormatPayload(format string, event AlertEvent) ([]byte, error) {
	switch format {
	case "slack":
		return formatSlack(event)
	case "pagerduty":
		return formatPagerDuty(event)
	default:
		return formatGeneric(event)
	}
}

func formatGeneric(event AlertEvent) ([]byte, error) {
	return json.Marshal(event)
}

func formatSlack(event AlertEvent) ([]byte, error) {
	payload := map[string]any{
		"blocks": []any{
			map[string]any{
				"type": "header",
				"text": map[string]any{
					"type": "plain_text",
					"text": fmt.Sprintf("gamemna: %s risk (%d/100)", event.Level, event.Score),
				},
			},
			map[string]any{
				"type": "section",
				"fields": []any{
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Bidders:* %d", event.Bidders)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Due Diligence:* %v", event.DueDiligence)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Cultural Fit:* %v", event.CulturalFit)},
					map[string]any{"type": "mrkdwn", "text": fmt.Sprintf("*Recommendation:* %s", event.Recommendation)},
				},
			},
			map[string]any{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": "*Drivers:*\n" + strings.Join(event.Drivers, "\n"),
				},
			},
		},
	}
	return json.Marshal(payload)
}

func formatPagerDuty(event AlertEvent) ([]byte, error) {
	severity := "info"
	switch event.Level {
	case "CRITICAL":
		severity = "critical"
	case "HIGH":
		severity = "warning"
	}

	payload := map[string]any{
		"event_action": "trigger",
		"payload": map[string]any{
			"summary":  fmt.Sprintf("gamemna %s: transaction risk %d/100", event.Level, event.Score),
			"severity": severity,
			"source":   "gamemna",
			"custom_details": map[string]any{
				"bidders":          event.Bidders,
				"due_diligence":    event.DueDiligence,
				"cultural_fit":     event.CulturalFit,
				"recommendation":   event.Recommendation,
				"drivers":          event.Drivers,
				"eval_id":          event.EvalID,
				"calibration_hash": event.CalibrationHash,
			},
		},
	}
	return json.Marshal(payload)
}
