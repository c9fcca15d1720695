package store

import (
	"context"
	"database/sql"

	"github.com/starford/recipebox/internal/apperr"
	"github.com/starford/recipebox/internal/models"
)

// ListComments returns the comments of a recipe in creation order. The
// existence check and the select share one transaction.
func (db *DB) ListComments(ctx context.Context, recipeID string) ([]models.Comment, error) {
	tx, err := db.conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: db.dialect == DialectPostgres})
	if err != nil {
		return nil, apperr.Storage("begin tx", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ok, err := db.recipeExists(ctx, tx, recipeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound("recipe", recipeID)
	}

	rows, err := tx.QueryContext(ctx, db.rebind(`
		SELECT id, recipe_id, author, text, created_at
		FROM comments
		WHERE recipe_id = ?
		ORDER BY seq
	`), recipeID)
	if err != nil {
		return nil, apperr.Storage("list comments", err)
	}
	defer rows.Close()

	out := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.RecipeID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, apperr.Storage("scan comment", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("list comments", err)
	}
	if err := rows.Close(); err != nil {
		return nil, apperr.Storage("list comments", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, apperr.Storage("commit", err)
	}
	return out, nil
}

// InsertComment persists a comment after checking, in the same transaction,
// that its recipe exists.
func (db *DB) InsertComment(ctx context.Context, c *models.Comment) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Storage("begin tx", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ok, err := db.recipeExists(ctx, tx, c.RecipeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("recipe", c.RecipeID)
	}
	if _, err := tx.ExecContext(ctx, db.rebind(`
		INSERT INTO comments (id, recipe_id, author, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), c.ID, c.RecipeID, c.Author, c.Text, c.CreatedAt); err != nil {
		return apperr.Storage("insert comment", err)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Storage("commit", err)
	}
	return nil
}

// DeleteComment removes a comment scoped to its recipe.
func (db *DB) DeleteComment(ctx context.Context, recipeID, commentID string) error {
	res, err := db.conn.ExecContext(ctx,
		db.rebind(`DELETE FROM comments WHERE id = ? AND recipe_id = ?`), commentID, recipeID)
	if err != nil {
		return apperr.Storage("delete comment", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage("delete comment", err)
	}
	if n > 0 {
		return nil
	}
	ok, err := db.recipeExists(ctx, db.conn, recipeID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("recipe", recipeID)
	}
	return apperr.NotFound("comment", commentID)
}
