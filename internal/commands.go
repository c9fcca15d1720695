package internal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/recipebox/internal/importer"
	"github.com/starford/recipebox/internal/mcpserver"
	"github.com/starford/recipebox/internal/recipeservice"
	"github.com/starford/recipebox/internal/store"
)

// RunMCP serves the recipe tools over MCP stdio. Logs must not go to stdout,
// so callers pass WithLogOutput(os.Stderr).
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := app.logger()

	db, err := store.Open(ctx, app.config.Storage.DSN)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	srv := mcpserver.New(recipeservice.NewService(db, nil), app.version)
	logger.Info("MCP server starting", slog.String("dialect", string(db.Dialect())))
	return srv.ServeStdio()
}

// Import runs one import pass over the configured (or WithDir) directory.
func Import(ctx context.Context, opts ...Option) (importer.Stats, error) {
	app, err := newApplication(opts)
	if err != nil {
		return importer.Stats{}, err
	}
	logger := app.logger()

	dir := app.dir()
	if dir == "" {
		return importer.Stats{}, fmt.Errorf("import dir is required")
	}
	files, err := openFiles(dir)
	if err != nil {
		return importer.Stats{}, err
	}

	db, err := store.Open(ctx, app.config.Storage.DSN)
	if err != nil {
		return importer.Stats{}, fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	im := importer.New(recipeservice.NewService(db, nil), db, files, logger)
	st, err := im.Sync(ctx)
	if err != nil {
		return st, fmt.Errorf("import: %w", err)
	}
	logger.Info("Import done",
		slog.String("dir", files.Root()),
		slog.Int("created", st.Created),
		slog.Int("updated", st.Updated),
		slog.Int("unchanged", st.Unchanged),
		slog.Int("failed", st.Failed),
		slog.Int("forgotten", st.Forgotten))
	return st, nil
}

// Export writes every recipe as Markdown into the configured (or WithDir)
// directory and returns the number of files written.
func Export(ctx context.Context, opts ...Option) (int, error) {
	app, err := newApplication(opts)
	if err != nil {
		return 0, err
	}
	logger := app.logger()

	dir := app.dir()
	if dir == "" {
		return 0, fmt.Errorf("export dir is required")
	}
	files, err := openFiles(dir)
	if err != nil {
		return 0, err
	}

	db, err := store.Open(ctx, app.config.Storage.DSN)
	if err != nil {
		return 0, fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	n, err := importer.Export(ctx, recipeservice.NewService(db, nil), db, files)
	if err != nil {
		return n, fmt.Errorf("export: %w", err)
	}
	logger.Info("Export done", slog.String("dir", files.Root()), slog.Int("recipes", n))
	return n, nil
}

func (a *application) dir() string {
	if a.importDir != "" {
		return a.importDir
	}
	return a.config.Import.Dir
}
