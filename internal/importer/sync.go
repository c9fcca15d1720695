// Package importer keeps recipes in step with a directory of recipe files
// and writes recipes back out as Markdown.
package importer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/starford/recipebox/internal/apperr"
	"github.com/starford/recipebox/internal/models"
	"github.com/starford/recipebox/internal/parser"
	"github.com/starford/recipebox/internal/recipeservice"
	"github.com/starford/recipebox/internal/storage"
	"github.com/starford/recipebox/internal/store"
)

// Import outcomes reported to callbacks and counted in Stats.
const (
	KindCreated   = "created"
	KindUpdated   = "updated"
	KindForgotten = "forgotten"
)

// Stats summarises one Sync pass.
type Stats struct {
	Created   int
	Updated   int
	Unchanged int
	Failed    int
	Forgotten int
}

// Importer turns recipe files into recipes through the recipe service, so
// imported recipes get the same validation and change events as API calls.
type Importer struct {
	svc    *recipeservice.Service
	ledger store.ImportLedger
	files  storage.Provider
	logger *slog.Logger
}

// New creates an Importer.
func New(svc *recipeservice.Service, ledger store.ImportLedger, files storage.Provider, logger *slog.Logger) *Importer {
	return &Importer{svc: svc, ledger: ledger, files: files, logger: logger}
}

// Sync walks the directory and brings recipes up to date:
//   - new files create recipes
//   - changed files update the recipe they created (or re-create it if it was deleted)
//   - files removed from disk drop their ledger row; the recipe stays
func (im *Importer) Sync(ctx context.Context) (Stats, error) {
	var st Stats

	metas, err := im.files.List("")
	if err != nil {
		return st, err
	}
	records, err := im.ledger.ImportRecords(ctx)
	if err != nil {
		return st, err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if rec, ok := records[m.Path]; ok && rec.Checksum == m.Checksum {
			st.Unchanged++
			continue
		}

		data, err := im.files.Read(m.Path)
		if err != nil {
			im.logger.Warn("import: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			st.Failed++
			continue
		}
		kind, err := im.importFile(ctx, records, m.Path, data)
		if err != nil {
			im.logger.Warn("import: file skipped", slog.String("path", m.Path), slog.String("error", err.Error()))
			st.Failed++
			continue
		}
		im.logger.Debug("import: imported", slog.String("path", m.Path), slog.String("op", kind))
		switch kind {
		case KindCreated:
			st.Created++
		case KindUpdated:
			st.Updated++
		default:
			st.Unchanged++
		}
	}

	for p := range records {
		if _, ok := disk[p]; ok {
			continue
		}
		if err := im.ledger.ForgetImport(ctx, p); err != nil {
			im.logger.Warn("import: forget failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		im.logger.Debug("import: forgot removed file", slog.String("path", p))
		st.Forgotten++
	}

	return st, nil
}

// ImportFile imports one file, looking up its ledger row first. It returns
// the outcome kind, or "" when the content is unchanged.
func (im *Importer) ImportFile(ctx context.Context, path string, data []byte) (string, error) {
	records, err := im.ledger.ImportRecords(ctx)
	if err != nil {
		return "", err
	}
	return im.importFile(ctx, records, path, data)
}

func (im *Importer) importFile(ctx context.Context, records map[string]models.ImportRecord, path string, data []byte) (string, error) {
	sum := storage.Checksum(data)
	rec, known := records[path]
	if known && rec.Checksum == sum {
		return "", nil
	}

	res, err := parser.ParseFile(path, data)
	if err != nil {
		return "", apperr.Invalid(err)
	}

	kind := KindCreated
	var recipeID string
	if known {
		r, err := im.svc.UpdateRecipe(ctx, rec.RecipeID, recipeservice.UpdateRecipeInput{
			Title:        res.Title,
			Ingredients:  res.Ingredients,
			Instructions: res.Instructions,
		})
		switch {
		case err == nil:
			kind, recipeID = KindUpdated, r.ID
		case errors.Is(err, apperr.ErrNotFound):
			// Recipe was deleted since the last import; fall through and re-create.
		default:
			return "", err
		}
	}
	if recipeID == "" {
		r, err := im.svc.CreateRecipe(ctx, recipeservice.CreateRecipeInput{
			Title:        res.Title,
			Ingredients:  res.Ingredients,
			Instructions: res.Instructions,
			Image:        res.Image,
		})
		if err != nil {
			return "", err
		}
		recipeID = r.ID
	}

	if err := im.ledger.RecordImport(ctx, models.ImportRecord{Path: path, Checksum: sum, RecipeID: recipeID}); err != nil {
		return "", err
	}
	return kind, nil
}
