package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageCreate(t *testing.T) {
	ctx := context.Background()
	services, _ := newTestServices(t)
	services.Messages.now = fixedClock(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC))

	message, err := services.Messages.Create(ctx, model.MessageInput{Username: "alice", Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, model.Message{
		ID:        1,
		Username:  "alice",
		Message:   "hello",
		CreatedAt: "2025-03-01T09:30:00.000000Z",
	}, message)
}

func TestMessageCreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input model.MessageInput
		kind  validation.Kind
	}{
		{name: "missing username", input: model.MessageInput{Message: "hi"}, kind: validation.MissingField},
		{name: "empty message", input: model.MessageInput{Username: "bob", Message: ""}, kind: validation.MissingField},
		{name: "username too long", input: model.MessageInput{Username: strings.Repeat("u", 21), Message: "hi"}, kind: validation.TooLong},
		{name: "message too long", input: model.MessageInput{Username: "bob", Message: strings.Repeat("m", 51)}, kind: validation.TooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			services, _ := newTestServices(t)

			_, err := services.Messages.Create(context.Background(), tt.input)

			var violations validation.Violations
			require.True(t, errors.As(err, &violations))
			assert.True(t, violations.Has(tt.kind))
		})
	}

	t.Run("limits are inclusive", func(t *testing.T) {
		services, _ := newTestServices(t)

		_, err := services.Messages.Create(context.Background(), model.MessageInput{
			Username: strings.Repeat("u", 20),
			Message:  strings.Repeat("m", 50),
		})
		assert.NoError(t, err)
	})
}

func TestMessageListOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	services, srv := newTestServices(t)
	writeFile(t, srv.Config.Storage.MessagesPath, `[
    {"id": 1, "username": "a", "message": "oldest", "created_at": "2024-01-01T00:00:00.000000Z"},
    {"id": 2, "username": "b", "message": "newest", "created_at": "2024-03-01T00:00:00.000000Z"},
    {"id": 3, "username": "c", "message": "middle", "created_at": "2024-02-01T00:00:00.000000Z"},
    {"id": 4, "username": "d", "message": "tie", "created_at": "2024-02-01T00:00:00.000000Z"}
]`)

	ids := func(messages []model.Message) []int64 {
		out := make([]int64, 0, len(messages))
		for _, m := range messages {
			out = append(out, m.ID)
		}
		return out
	}

	all, total, err := services.Messages.List(ctx, 1, 999)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []int64{2, 3, 4, 1}, ids(all))

	page, total, err := services.Messages.List(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Equal(t, []int64{1}, ids(page))

	past, total, err := services.Messages.List(ctx, 9, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Empty(t, past)
}

func TestMessageListHugePageDoesNotOverflow(t *testing.T) {
	services, _ := newTestServices(t)

	_, err := services.Messages.Create(context.Background(), model.MessageInput{Username: "a", Message: "b"})
	require.NoError(t, err)

	messages, total, err := services.Messages.List(context.Background(), 1<<62, 1<<62)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, messages)
}

func TestMessageListFillsMissingCreatedAt(t *testing.T) {
	services, srv := newTestServices(t)
	services.Messages.now = fixedClock(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	writeFile(t, srv.Config.Storage.MessagesPath, `[
    {"id": 1, "username": "a", "message": "dated", "created_at": "2024-01-01T00:00:00.000000Z"},
    {"id": 2, "username": "b", "message": "undated"}
]`)

	messages, _, err := services.Messages.List(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, int64(2), messages[0].ID)
	assert.Equal(t, "2030-01-01T00:00:00.000000Z", messages[0].CreatedAt)
}

func TestMessageListRejectsBadPaging(t *testing.T) {
	services, _ := newTestServices(t)

	_, _, err := services.Messages.List(context.Background(), 0, 10)
	assert.Error(t, err)

	_, _, err = services.Messages.List(context.Background(), 1, 0)
	assert.Error(t, err)
}

func TestMessageListInvalidTimestamp(t *testing.T) {
	services, srv := newTestServices(t)
	writeFile(t, srv.Config.Storage.MessagesPath, `[{"id": 1, "username": "a", "message": "b", "created_at": "not a time"}]`)

	_, _, err := services.Messages.List(context.Background(), 1, 10)
	require.Error(t, err)

	var violations validation.Violations
	assert.False(t, errors.As(err, &violations))
}
