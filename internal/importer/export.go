package importer

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/starford/recipebox/internal/models"
	"github.com/starford/recipebox/internal/parser"
	"github.com/starford/recipebox/internal/recipeservice"
	"github.com/starford/recipebox/internal/storage"
	"github.com/starford/recipebox/internal/store"
)

// Export writes every recipe as a Markdown file and returns how many were
// written. Each file is recorded in the ledger as coming from its recipe, so
// importing the same directory afterwards does not duplicate recipes.
func Export(ctx context.Context, svc *recipeservice.Service, ledger store.ImportLedger, files storage.Provider) (int, error) {
	recipes, err := svc.ListRecipes(ctx)
	if err != nil {
		return 0, err
	}
	for i, r := range recipes {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		data, err := parser.Render(r)
		if err != nil {
			return i, err
		}
		name := FileName(r.Title, r.ID)

		// Record before writing: a watcher on the same directory must see
		// the ledger row when the file appears.
		rec := models.ImportRecord{Path: name, Checksum: storage.Checksum(data), RecipeID: r.ID}
		if err := ledger.RecordImport(ctx, rec); err != nil {
			return i, err
		}
		if err := files.Write(name, data); err != nil {
			_ = ledger.ForgetImport(ctx, name)
			return i, fmt.Errorf("export %s: %w", r.ID, err)
		}
	}
	return len(recipes), nil
}

// FileName returns "<slug>-<id prefix>.md" for a recipe.
func FileName(title, id string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "recipe"
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return slug + "-" + id + ".md"
}
