package repository

import (
	"context"

	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/storage"
)

// MessageRepository stores messages in a JSON array file.
type MessageRepository struct {
	jsonArray[model.Message]
}

func NewMessageRepository(file *storage.File) *MessageRepository {
	return &MessageRepository{jsonArray[model.Message]{file: file}}
}

// Insert assigns the next id to the message built by build and appends it.
func (r *MessageRepository) Insert(ctx context.Context, build func(id int64) model.Message) (model.Message, error) {
	var created model.Message

	err := r.Mutate(ctx, func(messages []model.Message) ([]model.Message, bool, error) {
		created = build(nextID(messages, func(m model.Message) int64 { return m.ID }))
		return append(messages, created), true, nil
	})
	if err != nil {
		return model.Message{}, err
	}

	return created, nil
}
