package service

import (
	"context"
	"sort"
	"time"

	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/repository"
	"github.com/deppfellow/bookboard/internal/response"
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/deppfellow/bookboard/internal/validation"
	"github.com/pkg/errors"
)

// MessageService implements the message board operations.
type MessageService struct {
	server   *server.Server
	messages *repository.MessageRepository
	now      func() time.Time
}

func NewMessageService(s *server.Server, messages *repository.MessageRepository) *MessageService {
	return &MessageService{
		server:   s,
		messages: messages,
		now:      time.Now,
	}
}

// Create validates in and stores it with the current UTC instant as created_at.
func (s *MessageService) Create(ctx context.Context, in model.MessageInput) (model.Message, error) {
	if err := in.Validate(); err != nil {
		return model.Message{}, err
	}

	created, err := s.messages.Insert(ctx, func(id int64) model.Message {
		return model.Message{
			ID:        id,
			Username:  in.Username,
			Message:   in.Message,
			CreatedAt: response.FormatTimestamp(s.now()),
		}
	})
	if err != nil {
		return model.Message{}, err
	}

	loggerFrom(ctx, s.server.Logger).Info().
		Int64("message_id", created.ID).
		Str("username", created.Username).
		Msg("message posted")
	return created, nil
}

// List returns one page of messages, most recent first, and the total count.
//
// page and limit are 1-based and must be positive; a page past the end
// yields an empty slice. Messages with equal timestamps keep their stored order.
func (s *MessageService) List(ctx context.Context, page, limit int) ([]model.Message, int, error) {
	if page < 1 || limit < 1 {
		return nil, 0, validation.Violations{validation.Invalid("page", "Page and limit must be positive integers.")}
	}

	messages, err := s.messages.All(ctx)
	if err != nil {
		return nil, 0, err
	}

	type entry struct {
		message model.Message
		created time.Time
	}

	entries := make([]entry, 0, len(messages))
	for _, message := range messages {
		if message.CreatedAt == "" {
			message.CreatedAt = response.FormatTimestamp(s.now())
		}

		created, err := message.CreatedTime()
		if err != nil {
			return nil, 0, errors.Wrapf(err, "message %d has invalid created_at %q", message.ID, message.CreatedAt)
		}
		entries = append(entries, entry{message: message, created: created})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].created.After(entries[j].created)
	})

	total := len(entries)
	start, end := total, total
	if page-1 < total/limit+1 {
		start = min((page-1)*limit, total)
		end = start + min(limit, total-start)
	}

	result := make([]model.Message, 0, end-start)
	for _, e := range entries[start:end] {
		result = append(result, e.message)
	}

	return result, total, nil
}
