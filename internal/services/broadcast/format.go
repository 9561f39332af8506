package broadcast

import (
	"fmt"

	"github.com/syntoo/nepsebot/internal/models"
)

// FormatDailySummary renders the broadcast message body
func FormatDailySummary(snapshot *models.IndexSnapshot) string {
	return fmt.Sprintf(
		"📅 दैनिक NEPSE सारांश\n\n"+
			"NEPSE Index: %.2f\n"+
			"Change: %s\n\n"+
			"थप डाटा हेर्न Symbol पठाउनुहोस्।",
		snapshot.Index, snapshot.Change)
}
