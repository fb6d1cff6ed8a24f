package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/deppfellow/bookboard/internal/lib/utils"
	"github.com/deppfellow/bookboard/internal/model"
	"github.com/deppfellow/bookboard/internal/repository"
	"github.com/deppfellow/bookboard/internal/service"
	"github.com/spf13/cobra"
)

func newImportBooksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-books <file.json>",
		Short: "Bulk-create the books listed in a JSON array file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportBooks(cmd.Context(), args[0])
		},
	}
}

func runImportBooks(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	var items []model.BookInput
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("%s must hold a JSON array of book objects: %w", path, err)
	}

	srv, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	services, err := service.NewService(srv, repository.NewRepositories(srv))
	if err != nil {
		return err
	}

	created, err := services.Books.BulkCreate(ctx, items)
	if err != nil {
		return fmt.Errorf("import failed, nothing was written: %w", err)
	}

	srv.Logger.Info().Int("count", len(created)).Str("file", path).Msg("books imported")
	return utils.PrintJSON(os.Stdout, created)
}
