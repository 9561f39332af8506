package server

import "net/http"

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Liveness probe used by the hosting platform
	mux.HandleFunc("/", s.app.APIHandler.HomeHandler)

	// Telegram update callbacks
	mux.HandleFunc("/webhook/", s.app.WebhookHandler.UpdateHandler)

	// Broadcast trigger (scheduler job and external cron pingers)
	mux.HandleFunc("/send_daily_summary", s.app.SummaryHandler.SendDailySummaryHandler)

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/subscribers", s.app.StatusHandler.ListSubscribersHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
