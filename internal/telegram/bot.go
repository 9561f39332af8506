package telegram

import (
	"context"
	"errors"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/syntoo/nepsebot/internal/common"
	"github.com/syntoo/nepsebot/internal/interfaces"
)

// SubscriberRegistry is the subset of the registry service the bot needs
type SubscriberRegistry interface {
	Subscribe(ctx context.Context, chatID int64) (bool, error)
	Unsubscribe(ctx context.Context, chatID int64) (bool, error)
}

// UserRegistry records chat identities on first contact
type UserRegistry interface {
	Register(ctx context.Context, chatID int64, fullName, username string) error
}

// Bot routes inbound updates to the matching intent handler. Commands are
// matched on the first token; any other text is treated as a symbol lookup.
type Bot struct {
	sender      interfaces.MessageSender
	resolver    interfaces.SymbolResolver
	subscribers SubscriberRegistry
	users       UserRegistry
	logger      arbor.ILogger
}

// NewBot creates the update router
func NewBot(sender interfaces.MessageSender, resolver interfaces.SymbolResolver, subscribers SubscriberRegistry, users UserRegistry, logger arbor.ILogger) *Bot {
	return &Bot{
		sender:      sender,
		resolver:    resolver,
		subscribers: subscribers,
		users:       users,
		logger:      logger,
	}
}

// HandleUpdate dispatches a single webhook update. Updates without a text
// message are ignored. Reply delivery failures are logged, not returned;
// the webhook must acknowledge regardless.
func (b *Bot) HandleUpdate(ctx context.Context, update *Update) {
	if update == nil || update.Message == nil || update.Message.Text == "" {
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	b.logger.Debug().
		Int64("chat_id", chatID).
		Str("text", text).
		Msg("Handling update")

	var reply string
	parseMode := interfaces.ParseModeNone

	switch command(text) {
	case "/start":
		reply = b.handleStart(ctx, msg)
	case "/subscribe":
		reply = b.handleSubscribe(ctx, chatID)
	case "/unsubscribe":
		reply = b.handleUnsubscribe(ctx, chatID)
	default:
		reply, parseMode = b.handleSymbolLookup(ctx, text)
	}

	if err := b.sender.SendMessage(ctx, chatID, reply, parseMode); err != nil {
		b.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("Failed to deliver reply")
	}
}

// command extracts the leading bot command, or "" for plain text.
// "/start@NepseBot arg" and "/start" route the same way.
func command(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd)
}

func (b *Bot) handleStart(ctx context.Context, msg *Message) string {
	if msg.From != nil {
		if err := b.users.Register(ctx, msg.Chat.ID, msg.From.FullName(), msg.From.Username); err != nil {
			// Registration is best effort; the greeting still goes out
			b.logger.Warn().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Failed to record user")
		}
	}
	return replyWelcome
}

func (b *Bot) handleSubscribe(ctx context.Context, chatID int64) string {
	if _, err := b.subscribers.Subscribe(ctx, chatID); err != nil {
		return replyPersistFailure
	}
	return replySubscribed
}

func (b *Bot) handleUnsubscribe(ctx context.Context, chatID int64) string {
	removed, err := b.subscribers.Unsubscribe(ctx, chatID)
	if err != nil {
		return replyPersistFailure
	}
	if !removed {
		return replyNotSubscribed
	}
	return replyUnsubscribed
}

func (b *Bot) handleSymbolLookup(ctx context.Context, text string) (string, string) {
	symbol := common.NormalizeSymbol(text)

	record, err := b.resolver.Resolve(ctx, symbol)
	switch {
	case err == nil:
		return FormatStockReply(record), interfaces.ParseModeHTML
	case errors.Is(err, interfaces.ErrInvalidSymbol):
		return replyInvalidSymbol, interfaces.ParseModeNone
	case errors.Is(err, interfaces.ErrSymbolNotFound), errors.Is(err, interfaces.ErrComputation):
		return formatNotFound(symbol), interfaces.ParseModeNone
	default:
		b.logger.Error().Err(err).Str("symbol", symbol).Msg("Symbol lookup failed")
		return replyLookupFailure, interfaces.ParseModeNone
	}
}
