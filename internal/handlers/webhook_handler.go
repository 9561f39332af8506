package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/telegram"
)

// WebhookHandler receives Telegram update callbacks. The bot token is
// embedded in the path so only Telegram can reach the route.
type WebhookHandler struct {
	bot    *telegram.Bot
	token  string
	logger arbor.ILogger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(bot *telegram.Bot, token string, logger arbor.ILogger) *WebhookHandler {
	return &WebhookHandler{
		bot:    bot,
		token:  token,
		logger: logger,
	}
}

// UpdateHandler handles POST /webhook/{token}
func (h *WebhookHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	token := strings.TrimPrefix(r.URL.Path, "/webhook/")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.token)) != 1 {
		h.logger.Warn().Str("remote", r.RemoteAddr).Msg("Webhook called with wrong token")
		WriteError(w, http.StatusNotFound, "not found")
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to decode webhook update")
		WriteError(w, http.StatusBadRequest, "invalid update payload")
		return
	}

	// Telegram retries undelivered updates, so the handler acknowledges
	// after dispatch regardless of reply outcome.
	h.bot.HandleUpdate(r.Context(), &update)

	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
