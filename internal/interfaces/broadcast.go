package interfaces

import (
	"context"

	"github.com/syntoo/nepsebot/internal/models"
)

// SendFunc delivers one message to one chat. Supplied by the transport
// layer at broadcast time.
type SendFunc func(ctx context.Context, chatID int64, text string) error

// BroadcastService sends the daily market summary to every subscriber in a
// registry snapshot. Best-effort, at-most-one-attempt-per-subscriber: a
// failed send is counted and logged, never retried, and never causes
// removal from the registry.
type BroadcastService interface {
	BroadcastDailySummary(ctx context.Context, send SendFunc) (*models.BroadcastResult, error)
}
