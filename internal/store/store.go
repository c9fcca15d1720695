package store

import (
	"context"
	"time"

	"github.com/starford/recipebox/internal/models"
)

// RecipeStore defines the persistence operations for recipes and comments.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with fakes.
type RecipeStore interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*models.Recipe, error)
	InsertRecipe(ctx context.Context, r *models.Recipe) error
	UpdateRecipe(ctx context.Context, id string, f models.RecipeFields, updatedAt time.Time) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) (int64, error)

	ListComments(ctx context.Context, recipeID string) ([]models.Comment, error)
	InsertComment(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, recipeID, commentID string) error
}

// ImportLedger tracks which files produced which recipes.
type ImportLedger interface {
	ImportRecords(ctx context.Context) (map[string]models.ImportRecord, error)
	RecordImport(ctx context.Context, rec models.ImportRecord) error
	ForgetImport(ctx context.Context, path string) error
}

// Verify *DB satisfies both interfaces at compile time.
var (
	_ RecipeStore  = (*DB)(nil)
	_ ImportLedger = (*DB)(nil)
)
