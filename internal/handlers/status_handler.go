package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/common"
	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/services/registry"
	"github.com/syntoo/nepsebot/internal/services/users"
)

// StatusHandler reports operational counters
type StatusHandler struct {
	registry  *registry.Service
	users     *users.Service
	scheduler interfaces.SchedulerService
	logger    arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(registryService *registry.Service, userService *users.Service, schedulerService interfaces.SchedulerService, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		registry:  registryService,
		users:     userService,
		scheduler: schedulerService,
		logger:    logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	subscribers, err := h.registry.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count subscribers")
		WriteError(w, http.StatusInternalServerError, "failed to read registry")
		return
	}

	registered, err := h.users.Count(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to count users")
		WriteError(w, http.StatusInternalServerError, "failed to read registry")
		return
	}

	response := map[string]interface{}{
		"status":            "ok",
		"version":           common.GetVersion(),
		"subscribers":       subscribers,
		"users":             registered,
		"scheduler_running": h.scheduler.IsRunning(),
	}

	// Job status is only present when the scheduled broadcast is enabled
	if job, err := h.scheduler.GetJobStatus(interfaces.DailySummaryJob); err == nil {
		response["daily_summary"] = job
	}

	WriteJSON(w, http.StatusOK, response)
}

// ListSubscribersHandler handles GET /api/subscribers
func (h *StatusHandler) ListSubscribersHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	subs, err := h.registry.Snapshot(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list subscribers")
		WriteError(w, http.StatusInternalServerError, "failed to read registry")
		return
	}

	chatIDs := make([]int64, 0, len(subs))
	for _, sub := range subs {
		chatIDs = append(chatIDs, sub.ChatID)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(chatIDs),
		"subscribers": chatIDs,
	})
}
