package interfaces

import "context"

// Parse modes accepted by the Telegram sendMessage endpoint.
const (
	ParseModeNone = ""
	ParseModeHTML = "HTML"
)

// MessageSender delivers outbound messages to a chat.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string, parseMode string) error
}
