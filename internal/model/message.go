package model

import (
	"time"

	"github.com/deppfellow/bookboard/internal/validation"
)

// Message is a message board post. CreatedAt is an ISO-8601 UTC timestamp
// kept as the exact string that was stored.
type Message struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// CreatedTime parses CreatedAt. Timestamps without a zone are read as UTC.
func (m Message) CreatedTime() (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, m.CreatedAt)
	if err == nil {
		return t, nil
	}
	if naive, naiveErr := time.ParseInLocation("2006-01-02T15:04:05.999999999", m.CreatedAt, time.UTC); naiveErr == nil {
		return naive, nil
	}
	return time.Time{}, err
}

// MessageInput is the request shape for posting a message.
// Lengths are counted in characters, not bytes.
type MessageInput struct {
	Username string `json:"username" validate:"required,max=20"`
	Message  string `json:"message" validate:"required,max=50"`
}

// Validate checks presence and length of both fields.
func (in MessageInput) Validate() error {
	return validation.Struct(in)
}
