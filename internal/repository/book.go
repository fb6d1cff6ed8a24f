package repository

import (
	"context"

	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/storage"
)

// BookRepository stores books in a JSON array file.
type BookRepository struct {
	jsonArray[model.Book]
}

func NewBookRepository(file *storage.File) *BookRepository {
	return &BookRepository{jsonArray[model.Book]{file: file}}
}

// Insert assigns consecutive ids starting at max+1 to the books built by
// build, appends them and writes the file once.
//
// build receives the first id to use. If it fails nothing is written.
func (r *BookRepository) Insert(ctx context.Context, build func(firstID int64) ([]model.Book, error)) ([]model.Book, error) {
	var created []model.Book

	err := r.Mutate(ctx, func(books []model.Book) ([]model.Book, bool, error) {
		firstID := nextID(books, func(b model.Book) int64 { return b.ID })

		var err error
		created, err = build(firstID)
		if err != nil {
			return nil, false, err
		}

		return append(books, created...), true, nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// FindByID returns the book with id.
func (r *BookRepository) FindByID(ctx context.Context, id int64) (model.Book, bool, error) {
	books, err := r.All(ctx)
	if err != nil {
		return model.Book{}, false, err
	}

	for _, book := range books {
		if book.ID == id {
			return book, true, nil
		}
	}
	return model.Book{}, false, nil
}

// Update applies patch to the book with id and persists it.
func (r *BookRepository) Update(ctx context.Context, id int64, patch model.BookPatch) (model.Book, bool, error) {
	var (
		updated model.Book
		found   bool
	)

	err := r.Mutate(ctx, func(books []model.Book) ([]model.Book, bool, error) {
		for i := range books {
			if books[i].ID == id {
				patch.Apply(&books[i])
				updated, found = books[i], true
				return books, true, nil
			}
		}
		return nil, false, nil
	})
	if err != nil {
		return model.Book{}, false, err
	}

	return updated, found, nil
}

// Delete removes every book with id. It reports whether anything was removed.
func (r *BookRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var removed bool

	err := r.Mutate(ctx, func(books []model.Book) ([]model.Book, bool, error) {
		kept := make([]model.Book, 0, len(books))
		for _, book := range books {
			if book.ID != id {
				kept = append(kept, book)
			}
		}

		removed = len(kept) != len(books)
		return kept, removed, nil
	})
	if err != nil {
		return false, err
	}

	return removed, nil
}
