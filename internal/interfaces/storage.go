package interfaces

import (
	"context"

	"github.com/syntoo/nepsebot/internal/models"
)

// SubscriberStorage - durable set of chats registered for broadcasts.
// All mutations persist before returning; losing a subscription silently
// is unacceptable.
type SubscriberStorage interface {
	// Add registers a chat. Returns true if newly added, false if it was
	// already present (idempotent no-op).
	Add(ctx context.Context, chatID int64) (bool, error)

	// Remove deregisters a chat. Returns true if it was present, false if
	// absent (idempotent no-op that does not touch persisted state).
	Remove(ctx context.Context, chatID int64) (bool, error)

	// Contains reports current membership.
	Contains(ctx context.Context, chatID int64) (bool, error)

	// List returns a point-in-time snapshot of all subscribers ordered by
	// registration time. Concurrent mutations do not affect the returned
	// slice.
	List(ctx context.Context) ([]models.Subscriber, error)

	// Count returns the number of registered subscribers.
	Count(ctx context.Context) (int, error)
}

// UserStorage - registered user metadata captured at first interaction.
// Records are updated on name change and never deleted.
type UserStorage interface {
	// Upsert stores or refreshes a user record. Returns true when a new
	// record was created.
	Upsert(ctx context.Context, user *models.RegisteredUser) (bool, error)

	// Get retrieves a user by chat ID, nil when unknown.
	Get(ctx context.Context, chatID int64) (*models.RegisteredUser, error)

	// Count returns the number of registered users.
	Count(ctx context.Context) (int, error)
}
