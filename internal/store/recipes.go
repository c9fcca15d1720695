package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/starford/recipebox/internal/apperr"
	"github.com/starford/recipebox/internal/models"
)

const recipeColumns = `id, title, ingredients, instructions, image, likes, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(s scanner) (*models.Recipe, error) {
	var r models.Recipe
	if err := s.Scan(&r.ID, &r.Title, &r.Ingredients, &r.Instructions, &r.Image,
		&r.Likes, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRecipes returns every recipe in insertion order.
func (db *DB) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY seq`)
	if err != nil {
		return nil, apperr.Storage("list recipes", err)
	}
	defer rows.Close()

	out := []models.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, apperr.Storage("scan recipe", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list recipes", err)
	}
	return out, nil
}

// GetRecipe returns a single recipe by id.
func (db *DB) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	row := db.conn.QueryRowContext(ctx,
		db.rebind(`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`), id)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("recipe", id)
		}
		return nil, apperr.Storage("get recipe", err)
	}
	return r, nil
}

// InsertRecipe persists a new recipe. The caller assigns id and timestamps.
func (db *DB) InsertRecipe(ctx context.Context, r *models.Recipe) error {
	_, err := db.conn.ExecContext(ctx, db.rebind(`
		INSERT INTO recipes (id, title, ingredients, instructions, image, likes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), r.ID, r.Title, r.Ingredients, r.Instructions, r.Image, r.Likes, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return apperr.Storage("insert recipe", err)
	}
	return nil
}

// UpdateRecipe replaces the text fields of a recipe in one statement and
// returns the stored result. Likes, image and created_at are untouched.
func (db *DB) UpdateRecipe(ctx context.Context, id string, f models.RecipeFields, updatedAt time.Time) (*models.Recipe, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind(`
		UPDATE recipes
		SET title = ?, ingredients = ?, instructions = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+recipeColumns,
	), f.Title, f.Ingredients, f.Instructions, updatedAt, id)
	r, err := scanRecipe(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("recipe", id)
		}
		return nil, apperr.Storage("update recipe", err)
	}
	return r, nil
}

// DeleteRecipe removes a recipe and all of its comments in one transaction.
// If any step fails nothing is removed.
func (db *DB) DeleteRecipe(ctx context.Context, id string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage("begin tx", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM comments WHERE recipe_id = ?`), id); err != nil {
		return apperr.Storage("delete comments", err)
	}
	res, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM recipes WHERE id = ?`), id)
	if err != nil {
		return apperr.Storage("delete recipe", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("delete recipe", err)
	}
	if n == 0 {
		return apperr.NotFound("recipe", id)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Storage("commit", err)
	}
	return nil
}

// IncrementLikes atomically adds one like and returns the new count.
func (db *DB) IncrementLikes(ctx context.Context, id string) (int64, error) {
	var likes int64
	err := db.conn.QueryRowContext(ctx,
		db.rebind(`UPDATE recipes SET likes = likes + 1 WHERE id = ? RETURNING likes`), id,
	).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.NotFound("recipe", id)
		}
		return 0, apperr.Storage("increment likes", err)
	}
	return likes, nil
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (db *DB) recipeExists(ctx context.Context, q rowQuerier, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, db.rebind(`SELECT 1 FROM recipes WHERE id = ?`), id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Storage("recipe exists", err)
	}
	return true, nil
}
