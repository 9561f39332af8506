package registry

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/models"
)

// Service provides business logic for the broadcast subscriber registry.
// It is the single writer of the subscriber set; mutations are durable
// before the call returns.
type Service struct {
	storage interfaces.SubscriberStorage
	logger  arbor.ILogger
}

// NewService creates a new registry service
func NewService(storage interfaces.SubscriberStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Subscribe registers a chat for the daily summary. Returns true when the
// chat was newly added.
func (s *Service) Subscribe(ctx context.Context, chatID int64) (bool, error) {
	added, err := s.storage.Add(ctx, chatID)
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to persist subscription")
		return false, fmt.Errorf("failed to subscribe chat %d: %w", chatID, err)
	}

	if added {
		s.logger.Info().Int64("chat_id", chatID).Msg("Chat subscribed to daily summary")
	} else {
		s.logger.Debug().Int64("chat_id", chatID).Msg("Chat already subscribed")
	}
	return added, nil
}

// Unsubscribe deregisters a chat. Returns true when the chat was present.
func (s *Service) Unsubscribe(ctx context.Context, chatID int64) (bool, error) {
	removed, err := s.storage.Remove(ctx, chatID)
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to persist unsubscription")
		return false, fmt.Errorf("failed to unsubscribe chat %d: %w", chatID, err)
	}

	if removed {
		s.logger.Info().Int64("chat_id", chatID).Msg("Chat unsubscribed from daily summary")
	}
	return removed, nil
}

// Contains reports whether a chat is currently subscribed
func (s *Service) Contains(ctx context.Context, chatID int64) (bool, error) {
	return s.storage.Contains(ctx, chatID)
}

// Snapshot returns a point-in-time copy of the subscriber set. Broadcasts
// iterate this copy, so concurrent subscribe/unsubscribe never affects an
// in-flight pass.
func (s *Service) Snapshot(ctx context.Context) ([]models.Subscriber, error) {
	subs, err := s.storage.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to snapshot subscriber registry")
		return nil, err
	}

	s.logger.Debug().Int("count", len(subs)).Msg("Subscriber registry snapshot taken")
	return subs, nil
}

// Count returns the number of registered subscribers
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.Count(ctx)
}
