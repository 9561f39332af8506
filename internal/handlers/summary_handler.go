package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/interfaces"
)

// SummaryHandler triggers a daily summary broadcast over HTTP. The same
// path is hit by the in-process scheduler job and by external cron pingers.
type SummaryHandler struct {
	broadcaster interfaces.BroadcastService
	sender      interfaces.MessageSender
	logger      arbor.ILogger
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(broadcaster interfaces.BroadcastService, sender interfaces.MessageSender, logger arbor.ILogger) *SummaryHandler {
	return &SummaryHandler{
		broadcaster: broadcaster,
		sender:      sender,
		logger:      logger,
	}
}

// SendDailySummaryHandler handles GET /send_daily_summary
func (h *SummaryHandler) SendDailySummaryHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	send := func(ctx context.Context, chatID int64, text string) error {
		return h.sender.SendMessage(ctx, chatID, text, interfaces.ParseModeNone)
	}

	// A started pass runs to completion over its snapshot. The trigger
	// request disconnecting (external cron pingers rarely wait) or the
	// server write timeout firing must not cancel the remaining sends.
	result, err := h.broadcaster.BroadcastDailySummary(context.WithoutCancel(r.Context()), send)
	if err != nil {
		h.logger.Error().Err(err).Msg("Daily summary broadcast failed")
		WriteError(w, http.StatusBadGateway, "failed to fetch index data")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": fmt.Sprintf("Sent to %d users", result.Succeeded),
	})
}
