// Package repository handles all interactions with the resource files.
//
// It decodes and encodes the JSON arrays stored by the storage package,
// abstracting the file format away from the service layer.
package repository

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/deppfellow/bookboard/internal/server"
	"github.com/deppfellow/bookboard/internal/storage"
	"github.com/pkg/errors"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Books    *BookRepository
	Messages *MessageRepository
}

// NewRepositories constructs the repository container over the server's storage.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Books:    NewBookRepository(s.Storage.Books),
		Messages: NewMessageRepository(s.Storage.Messages),
	}
}

// jsonArray reads and writes a resource file holding a JSON array of T.
type jsonArray[T any] struct {
	file *storage.File
}

// All decodes every record in the file, in stored order.
func (r jsonArray[T]) All(ctx context.Context) ([]T, error) {
	data, err := r.file.Read(ctx)
	if err != nil {
		return nil, err
	}
	return r.decode(data)
}

// Mutate loads all records, hands them to fn and writes back what fn returns.
//
// The whole cycle runs under the file lock. When fn reports changed=false
// or returns an error, nothing is written.
func (r jsonArray[T]) Mutate(ctx context.Context, fn func(records []T) (next []T, changed bool, err error)) error {
	return r.file.Update(ctx, func(current []byte) ([]byte, error) {
		records, err := r.decode(current)
		if err != nil {
			return nil, err
		}

		next, changed, err := fn(records)
		if err != nil || !changed {
			return nil, err
		}

		return r.encode(next)
	})
}

func (r jsonArray[T]) decode(data []byte) ([]T, error) {
	records := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "decode %s", r.file.Path())
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// encode renders records as a JSON array indented with 4 spaces.
func (r jsonArray[T]) encode(records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		return nil, errors.Wrapf(err, "encode %s", r.file.Path())
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// nextID returns max(ids)+1, or 1 when there are none.
func nextID[T any](records []T, id func(T) int64) int64 {
	var maxID int64
	for _, record := range records {
		if v := id(record); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}
