package models

import "time"

// RegisteredUser maps a Telegram chat to display metadata captured at first
// interaction. Name fields are updated when Telegram reports a change;
// records are never deleted.
type RegisteredUser struct {
	ChatID    int64     `json:"chat_id" badgerhold:"key"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Subscriber is a chat registered for the daily market summary broadcast.
// Membership is the only state.
type Subscriber struct {
	ChatID    int64     `json:"chat_id" badgerhold:"key"`
	CreatedAt time.Time `json:"created_at"`
}

// BroadcastResult reports the outcome of one broadcast pass.
type BroadcastResult struct {
	RunID     string `json:"run_id"`
	Attempted int    `json:"attempted"`
	Succeeded int    `json:"succeeded"`
}
