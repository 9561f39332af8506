package users

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/interfaces"
	"github.com/syntoo/nepsebot/internal/models"
)

// Service records chat identities and display metadata at first
// interaction. Records are refreshed on name change and never deleted.
type Service struct {
	storage interfaces.UserStorage
	logger  arbor.ILogger
}

// NewService creates a new user registration service
func NewService(storage interfaces.UserStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Register captures or refreshes a user record
func (s *Service) Register(ctx context.Context, chatID int64, fullName, username string) error {
	isNew, err := s.storage.Upsert(ctx, &models.RegisteredUser{
		ChatID:   chatID,
		FullName: fullName,
		Username: username,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to persist user registration")
		return fmt.Errorf("failed to register user %d: %w", chatID, err)
	}

	if isNew {
		s.logger.Info().Int64("chat_id", chatID).Str("username", username).Msg("New user registered")
	}
	return nil
}

// Count returns the number of registered users
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.storage.Count(ctx)
}
