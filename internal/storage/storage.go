// Package storage owns the JSON files backing each resource.
//
// It handles:
//   - creating a resource file (and its parent directory) as `[]` on first use
//   - whole-file reads
//   - whole-file writes through a temp file + rename, so readers never see
//     a half-written document
//   - serializing read-modify-write cycles per file: a mutex for requests in
//     this process, and an advisory lock on "<file>.lock" for other processes
package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deppfellow/bookboard/internal/config"
	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// emptyDocument is written to a resource file that does not exist yet.
var emptyDocument = []byte("[]")

const (
	filePerm = 0o644

	// lockRetryDelay is how often a blocked Update retries the cross-process lock.
	lockRetryDelay = 10 * time.Millisecond
)

// Storage groups the resource files used by the application.
type Storage struct {
	Books    *File
	Messages *File
	log      *zerolog.Logger
}

// New opens (creating when needed) the books and messages files named in cfg.
func New(cfg *config.Config, logger *zerolog.Logger) (*Storage, error) {
	books, err := OpenFile(cfg.Storage.BooksPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open books store")
	}

	messages, err := OpenFile(cfg.Storage.MessagesPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open messages store")
	}

	logger.Info().
		Str("books_path", books.Path()).
		Str("messages_path", messages.Path()).
		Msg("opened resource files")

	return &Storage{
		Books:    books,
		Messages: messages,
		log:      logger,
	}, nil
}

// Close releases the storage. Files are not held open between operations,
// so this only logs.
func (s *Storage) Close() error {
	s.log.Info().Msg("closing resource files")
	return nil
}

// File is a single JSON resource file.
type File struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// OpenFile ensures path exists, creating parent directories and an empty
// JSON array when it does not.
func OpenFile(path string) (*File, error) {
	f := &File{path: filepath.Clean(path)}
	f.lock = flock.New(f.path + ".lock")

	if _, err := os.Stat(f.path); err == nil {
		return f, nil
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", f.path)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "create directory for %s", f.path)
	}
	if err := writeAtomic(f.path, emptyDocument); err != nil {
		return nil, err
	}

	return f, nil
}

// Path returns the cleaned file path.
func (f *File) Path() string {
	return f.path
}

// Read returns the whole file content.
func (f *File) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.read()
}

// Update runs one read-modify-write cycle while holding the file lock.
// Waiting for another process to release the lock stops when ctx is done.
//
// fn receives the current content and returns the new content. Returning nil
// content (with a nil error) leaves the file untouched; returning an error
// aborts without writing.
func (f *File) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	locked, err := f.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return errors.Wrapf(err, "lock %s", f.path)
	}
	if !locked {
		return errors.Errorf("lock %s: not acquired", f.path)
	}
	defer func() { _ = f.lock.Unlock() }()

	current, err := f.read()
	if err != nil {
		return err
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}

	return writeAtomic(f.path, next)
}

// Ping checks the file is present and readable.
func (f *File) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return errors.Wrapf(err, "open %s", f.path)
	}
	return file.Close()
}

func (f *File) read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", f.path)
	}
	return data, nil
}

// writeAtomic replaces path with data so readers see either the old or the
// new document.
func writeAtomic(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, filePerm); err != nil {
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}

// PingTimeout bounds a single health check against a resource file.
const PingTimeout = 5 * time.Second
