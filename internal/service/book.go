package service

import (
	"context"

	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/repository"
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/deppfellow/bookboard/internal/validation"
)

// BookService implements the book catalogue operations.
type BookService struct {
	server *server.Server
	books  *repository.BookRepository
}

func NewBookService(s *server.Server, books *repository.BookRepository) *BookService {
	return &BookService{
		server: s,
		books:  books,
	}
}

// List returns every book in stored order.
func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	return s.books.All(ctx)
}

// Create validates in and stores it under the next id.
func (s *BookService) Create(ctx context.Context, in model.BookInput) (model.Book, error) {
	if err := in.Validate(); err != nil {
		return model.Book{}, err
	}

	created, err := s.books.Insert(ctx, func(firstID int64) ([]model.Book, error) {
		return []model.Book{in.Book(firstID)}, nil
	})
	if err != nil {
		return model.Book{}, err
	}

	loggerFrom(ctx, s.server.Logger).Info().Int64("book_id", created[0].ID).Msg("book created")
	return created[0], nil
}

// BulkCreate stores items under consecutive ids.
//
// Every item is validated before the file is written, so a bad item aborts
// the whole batch with nothing persisted.
func (s *BookService) BulkCreate(ctx context.Context, items []model.BookInput) ([]model.Book, error) {
	if len(items) == 0 {
		return nil, validation.Violations{validation.Input("Input must be a non-empty list of book objects.")}
	}

	created, err := s.books.Insert(ctx, func(firstID int64) ([]model.Book, error) {
		books := make([]model.Book, 0, len(items))
		for idx, item := range items {
			if err := item.Validate(); err != nil {
				return nil, forItem(err, idx+1)
			}
			books = append(books, item.Book(firstID+int64(idx)))
		}
		return books, nil
	})
	if err != nil {
		return nil, err
	}

	loggerFrom(ctx, s.server.Logger).Info().
		Int("count", len(created)).
		Int64("first_id", created[0].ID).
		Msg("books created")
	return created, nil
}

// GetByID returns the book with id, found=false when there is none.
func (s *BookService) GetByID(ctx context.Context, id int64) (model.Book, bool, error) {
	return s.books.FindByID(ctx, id)
}

// Update overwrites only the fields supplied in patch.
func (s *BookService) Update(ctx context.Context, id int64, patch model.BookPatch) (model.Book, bool, error) {
	return s.books.Update(ctx, id, patch)
}

// Delete removes the book with id. It reports false when there was none.
func (s *BookService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.books.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if removed {
		loggerFrom(ctx, s.server.Logger).Info().Int64("book_id", id).Msg("book deleted")
	}
	return removed, nil
}

// forItem labels the violations in err with a 1-based batch position.
func forItem(err error, item int) error {
	if violations, ok := err.(validation.Violations); ok {
		return violations.ForItem(item)
	}
	return err
}
