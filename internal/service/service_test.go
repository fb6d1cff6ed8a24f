package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deppfellow/bookboard/internal/config"
	"github.com/deppfellow/bookboard/internal/repository"
	"github.com/deppfellow/bookboard/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// newTestServices wires the services over fresh resource files in a temp dir.
func newTestServices(t *testing.T) (*Services, *server.Server) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.BooksPath = filepath.Join(dir, "books.json")
	cfg.Storage.MessagesPath = filepath.Join(dir, "messages.json")
	require.NoError(t, config.Finalize(cfg))

	logger := zerolog.Nop()
	srv, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	services, err := NewService(srv, repository.NewRepositories(srv))
	require.NoError(t, err)

	return services, srv
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixedClock returns successive instants one second apart.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}
