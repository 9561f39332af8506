package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/common"
	"github.com/syntoo/nepsebot/internal/handlers"
	"github.com/syntoo/nepsebot/internal/httpclient"
	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/scrape"
	"github.com/syntoo/nepsebot/internal/services/broadcast"
	"github.com/syntoo/nepsebot/internal/services/market"
	"github.com/syntoo/nepsebot/internal/services/registry"
	"github.com/syntoo/nepsebot/internal/services/scheduler"
	"github.com/syntoo/nepsebot/internal/services/users"
	"github.com/syntoo/nepsebot/internal/storage/badger"
	"github.com/syntoo/nepsebot/internal/telegram"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager *badger.Manager

	// Market data pipeline
	Resolver    interfaces.SymbolResolver
	IndexReader interfaces.IndexReader

	// Subscriber and user registries
	RegistryService *registry.Service
	UserService     *users.Service

	// Telegram transport
	TelegramClient *telegram.Client
	Bot            *telegram.Bot

	// Broadcast engine and schedule
	BroadcastEngine  interfaces.BroadcastService
	SchedulerService interfaces.SchedulerService

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	WebhookHandler *handlers.WebhookHandler
	SummaryHandler *handlers.SummaryHandler
	StatusHandler  *handlers.StatusHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.initScheduler(); err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %w", err)
	}

	if err := app.initHandlers(); err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return app, nil
}

func (a *App) initDatabase() error {
	manager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = manager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

// initServices initializes all business services in dependency order
func (a *App) initServices() error {
	a.RegistryService = registry.NewService(a.StorageManager.SubscriberStorage(), a.Logger)
	a.UserService = users.NewService(a.StorageManager.UserStorage(), a.Logger)

	client := httpclient.NewDefaultHTTPClient(a.Config.Sources.RequestTimeout)
	liveSource := scrape.NewLiveTradingSource(a.Config.Sources.LiveTradingURL, client, a.Logger)
	dailySource := scrape.NewDailySummarySource(a.Config.Sources.DailySummaryURL, client, a.Logger)

	a.Resolver = market.NewResolver(liveSource, dailySource, a.Logger)
	a.IndexReader = scrape.NewIndexReader(liveSource, a.Logger)

	a.TelegramClient = telegram.NewClient(&a.Config.Telegram, a.Logger)
	a.Bot = telegram.NewBot(a.TelegramClient, a.Resolver, a.RegistryService, a.UserService, a.Logger)

	a.BroadcastEngine = broadcast.NewEngine(a.IndexReader, a.RegistryService, a.Logger)

	a.Logger.Info().
		Str("live_trading_url", a.Config.Sources.LiveTradingURL).
		Str("daily_summary_url", a.Config.Sources.DailySummaryURL).
		Msg("Services initialized")

	return nil
}

func (a *App) initHandlers() error {
	a.APIHandler = handlers.NewAPIHandler()
	a.WebhookHandler = handlers.NewWebhookHandler(a.Bot, a.Config.Telegram.Token, a.Logger)
	a.SummaryHandler = handlers.NewSummaryHandler(a.BroadcastEngine, a.TelegramClient, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.RegistryService, a.UserService, a.SchedulerService, a.Logger)

	return nil
}

// initScheduler registers the daily summary job when scheduled broadcasts
// are enabled. Deployments that rely on an external cron pinger hitting
// /send_daily_summary leave this disabled.
func (a *App) initScheduler() error {
	a.SchedulerService = scheduler.NewService(a.Logger)

	if !a.Config.Broadcast.Enabled {
		a.Logger.Info().Msg("Scheduled broadcasts disabled")
		return nil
	}

	err := a.SchedulerService.RegisterJob(interfaces.DailySummaryJob, a.Config.Broadcast.Schedule, func() error {
		send := func(ctx context.Context, chatID int64, text string) error {
			return a.TelegramClient.SendMessage(ctx, chatID, text, interfaces.ParseModeNone)
		}

		result, err := a.BroadcastEngine.BroadcastDailySummary(context.Background(), send)
		if err != nil {
			return err
		}

		a.Logger.Info().
			Str("run_id", result.RunID).
			Int("attempted", result.Attempted).
			Int("succeeded", result.Succeeded).
			Msg("Scheduled daily summary completed")
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to register daily summary job: %w", err)
	}

	if err := a.SchedulerService.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	a.Logger.Info().
		Str("schedule", a.Config.Broadcast.Schedule).
		Msg("Daily summary broadcast scheduled")
	return nil
}

// RegisterWebhook points the Bot API at this deployment. Pending updates
// accumulated while the bot was down are dropped.
func (a *App) RegisterWebhook(ctx context.Context) error {
	if a.Config.Telegram.WebhookURL == "" {
		a.Logger.Warn().Msg("No webhook URL configured, skipping webhook registration")
		return nil
	}

	if err := a.TelegramClient.DeleteWebhook(ctx, true); err != nil {
		return fmt.Errorf("failed to delete existing webhook: %w", err)
	}

	base := strings.TrimSuffix(a.Config.Telegram.WebhookURL, "/")
	url := fmt.Sprintf("%s/webhook/%s", base, a.Config.Telegram.Token)
	if err := a.TelegramClient.SetWebhook(ctx, url); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	a.Logger.Info().Msg("Webhook registered")
	return nil
}

// Close shuts down application components in reverse dependency order
func (a *App) Close() error {
	if a.SchedulerService != nil {
		if err := a.SchedulerService.Stop(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to stop scheduler service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
		a.Logger.Info().Msg("Storage closed")
	}

	return nil
}
