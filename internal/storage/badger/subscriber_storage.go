package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/models"
)

// SubscriberStorage implements the SubscriberStorage interface for Badger.
// Badger transactions serialize the read-modify-write of each mutation, so
// concurrent subscribe/unsubscribe requests cannot corrupt the set.
type SubscriberStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSubscriberStorage creates a new SubscriberStorage instance
func NewSubscriberStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SubscriberStorage {
	return &SubscriberStorage{
		db:     db,
		logger: logger,
	}
}

// Add registers a chat for broadcasts. Idempotent: returns false without
// touching the store when the chat is already subscribed.
func (s *SubscriberStorage) Add(ctx context.Context, chatID int64) (bool, error) {
	var existing models.Subscriber
	err := s.db.Store().Get(chatID, &existing)
	if err == nil {
		return false, nil
	}
	if err != badgerhold.ErrNotFound {
		return false, fmt.Errorf("failed to check subscriber: %w", err)
	}

	sub := models.Subscriber{
		ChatID:    chatID,
		CreatedAt: time.Now(),
	}
	if err := s.db.Store().Insert(chatID, &sub); err != nil {
		return false, fmt.Errorf("failed to store subscriber: %w", err)
	}

	return true, nil
}

// Remove deregisters a chat. Idempotent: returns false without touching
// the store when the chat was never subscribed.
func (s *SubscriberStorage) Remove(ctx context.Context, chatID int64) (bool, error) {
	err := s.db.Store().Delete(chatID, &models.Subscriber{})
	if err == badgerhold.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete subscriber: %w", err)
	}
	return true, nil
}

// Contains reports current membership
func (s *SubscriberStorage) Contains(ctx context.Context, chatID int64) (bool, error) {
	var sub models.Subscriber
	err := s.db.Store().Get(chatID, &sub)
	if err == badgerhold.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return true, nil
}

// List returns all subscribers ordered by registration time. The slice is
// materialized before returning, so it is a point-in-time snapshot immune
// to concurrent add/remove.
func (s *SubscriberStorage) List(ctx context.Context) ([]models.Subscriber, error) {
	var subs []models.Subscriber
	// An empty query matches every record; no field criterion is needed
	err := s.db.Store().Find(&subs, (&badgerhold.Query{}).SortBy("CreatedAt"))
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return subs, nil
}

// Count returns the number of registered subscribers
func (s *SubscriberStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Subscriber{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return int(count), nil
}
