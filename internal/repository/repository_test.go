package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFile(t *testing.T, content string) *storage.File {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records.json")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	f, err := storage.OpenFile(path)
	require.NoError(t, err)
	return f
}

func oneBook(title string) func(int64) ([]model.Book, error) {
	return func(firstID int64) ([]model.Book, error) {
		return []model.Book{{ID: firstID, Title: title, Author: "a", Year: 2000, Available: true}}, nil
	}
}

func TestBookInsertAssignsNextID(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store starts at 1", func(t *testing.T) {
		repo := NewBookRepository(openFile(t, ""))

		created, err := repo.Insert(ctx, oneBook("Dune"))
		require.NoError(t, err)
		require.Len(t, created, 1)
		assert.Equal(t, int64(1), created[0].ID)
	})

	t.Run("max plus one, gaps are not reused", func(t *testing.T) {
		repo := NewBookRepository(openFile(t, `[{"id": 7, "title": "x"}, {"id": 3, "title": "y"}]`))

		created, err := repo.Insert(ctx, oneBook("Dune"))
		require.NoError(t, err)
		assert.Equal(t, int64(8), created[0].ID)

		books, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Len(t, books, 3)
	})

	t.Run("build failure writes nothing", func(t *testing.T) {
		f := openFile(t, "")
		repo := NewBookRepository(f)

		boom := errors.New("bad item")
		_, err := repo.Insert(ctx, func(int64) ([]model.Book, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)

		data, err := f.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
}

func TestEncodeLayout(t *testing.T) {
	ctx := context.Background()
	f := openFile(t, "")
	repo := NewBookRepository(f)

	_, err := repo.Insert(ctx, oneBook("Tom & Jerry <1>"))
	require.NoError(t, err)

	data, err := f.Read(ctx)
	require.NoError(t, err)

	expected := `[
    {
        "id": 1,
        "title": "Tom & Jerry <1>",
        "author": "a",
        "year": 2000,
        "available": true
    }
]`
	assert.Equal(t, expected, string(data))
}

func TestDecodeDefaultsAvailable(t *testing.T) {
	repo := NewBookRepository(openFile(t, `[{"id": 1, "title": "t", "author": "a", "year": 1}]`))

	book, found, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, book.Available)
}

func TestDecodeCorruptFile(t *testing.T) {
	repo := NewBookRepository(openFile(t, `{"not": "an array"}`))

	_, err := repo.All(context.Background())
	assert.Error(t, err)
}

func TestBookUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(openFile(t, `[{"id": 1, "title": "t", "author": "a", "year": 1, "available": true}]`))

	title := "New title"
	available := false
	updated, found, err := repo.Update(ctx, 1, model.BookPatch{Title: &title, Available: &available})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, model.Book{ID: 1, Title: "New title", Author: "a", Year: 1, Available: false}, updated)

	stored, _, err := repo.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)

	_, found, err = repo.Update(ctx, 99, model.BookPatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBookDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewBookRepository(openFile(t, `[{"id": 1, "title": "a"}, {"id": 2, "title": "b"}]`))

	removed, err := repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, 1)
	require.NoError(t, err)
	assert.False(t, removed)

	books, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, int64(2), books[0].ID)
}

func TestMessageInsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository(openFile(t, `[{"id": 4, "username": "u", "message": "m", "created_at": "2024-01-01T00:00:00.000000Z"}]`))

	created, err := repo.Insert(ctx, func(id int64) model.Message {
		return model.Message{ID: id, Username: "bob", Message: "hi", CreatedAt: "2024-01-02T00:00:00.000000Z"}
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)

	messages, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}
