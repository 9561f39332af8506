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

// UserStorage implements the UserStorage interface for Badger
type UserStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewUserStorage creates a new UserStorage instance
func NewUserStorage(db *BadgerDB, logger arbor.ILogger) interfaces.UserStorage {
	return &UserStorage{
		db:     db,
		logger: logger,
	}
}

// Upsert stores or refreshes a user record, preserving CreatedAt on
// update. Returns true when a new record was created.
func (s *UserStorage) Upsert(ctx context.Context, user *models.RegisteredUser) (bool, error) {
	now := time.Now()

	record := models.RegisteredUser{
		ChatID:    user.ChatID,
		FullName:  user.FullName,
		Username:  user.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var existing models.RegisteredUser
	err := s.db.Store().Get(user.ChatID, &existing)
	isNew := err == badgerhold.ErrNotFound
	if !isNew && err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !isNew {
		record.CreatedAt = existing.CreatedAt
	}

	if err := s.db.Store().Upsert(user.ChatID, &record); err != nil {
		return false, fmt.Errorf("failed to upsert user: %w", err)
	}

	return isNew, nil
}

// Get retrieves a user by chat ID, nil when unknown
func (s *UserStorage) Get(ctx context.Context, chatID int64) (*models.RegisteredUser, error) {
	var user models.RegisteredUser
	err := s.db.Store().Get(chatID, &user)
	if err == badgerhold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// Count returns the number of registered users
func (s *UserStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.RegisteredUser{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return int(count), nil
}
