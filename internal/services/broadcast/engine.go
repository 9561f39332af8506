// Package broadcast sends the daily market summary to every registered
// subscriber. Delivery is best-effort with at most one attempt per
// subscriber per pass: failures are counted and logged, never retried,
// and never cause removal from the registry.
package broadcast

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/models"
)

// SubscriberSource provides the point-in-time subscriber snapshot a
// broadcast pass iterates. Satisfied by the registry service.
type SubscriberSource interface {
	Snapshot(ctx context.Context) ([]models.Subscriber, error)
}

// Engine implements the BroadcastService interface
type Engine struct {
	indexReader interfaces.IndexReader
	subscribers SubscriberSource
	logger      arbor.ILogger
}

// NewEngine creates a broadcast engine
func NewEngine(indexReader interfaces.IndexReader, subscribers SubscriberSource, logger arbor.ILogger) *Engine {
	return &Engine{
		indexReader: indexReader,
		subscribers: subscribers,
		logger:      logger,
	}
}

// BroadcastDailySummary reads one index snapshot, formats one message and
// dispatches a send to every subscriber in a registry snapshot taken at
// broadcast start. Sends run concurrently and are joined before the
// aggregate count is returned. An unavailable snapshot aborts the pass
// before any send; a failed send never aborts the others.
func (e *Engine) BroadcastDailySummary(ctx context.Context, send interfaces.SendFunc) (*models.BroadcastResult, error) {
	runID := uuid.NewString()

	snapshot, err := e.indexReader.ReadSnapshot(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Str("run_id", runID).Msg("Daily summary aborted, index snapshot unavailable")
		return nil, fmt.Errorf("failed to read index snapshot: %w", err)
	}

	subs, err := e.subscribers.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot subscribers: %w", err)
	}

	message := FormatDailySummary(snapshot)

	e.logger.Info().
		Str("run_id", runID).
		Int("subscribers", len(subs)).
		Float64("index", snapshot.Index).
		Msg("Daily summary broadcast started")

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
	)

	for _, sub := range subs {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			if err := send(ctx, chatID, message); err != nil {
				e.logger.Warn().
					Err(err).
					Str("run_id", runID).
					Int64("chat_id", chatID).
					Msg("Summary delivery failed")
				return
			}
			succeeded.Add(1)
		}(sub.ChatID)
	}
	wg.Wait()

	result := &models.BroadcastResult{
		RunID:     runID,
		Attempted: len(subs),
		Succeeded: int(succeeded.Load()),
	}

	e.logger.Info().
		Str("run_id", runID).
		Int("attempted", result.Attempted).
		Int("succeeded", result.Succeeded).
		Msg("Daily summary broadcast finished")

	return result, nil
}
