package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/recipebox/internal/apperr"
)

func newMockDB(t *testing.T, dialect Dialect) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return New(conn, dialect), mock
}

func TestDeleteRecipe_CommentCleanupFailureRollsBack(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE recipe_id = ?`)).
		WithArgs("r1").
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := db.DeleteRecipe(context.Background(), "r1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRecipe_UnknownIDRollsBack(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE recipe_id = ?`)).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipes WHERE id = ?`)).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := db.DeleteRecipe(context.Background(), "r1")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRecipe_CommitFailure(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM comments WHERE recipe_id = ?`)).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM recipes WHERE id = ?`)).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("commit failed"))

	err := db.DeleteRecipe(context.Background(), "r1")
	assert.ErrorIs(t, err, apperr.ErrStorage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementLikes_PostgresPlaceholders(t *testing.T) {
	db, mock := newMockDB(t, DialectPostgres)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE recipes SET likes = likes + 1 WHERE id = $1 RETURNING likes`)).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(int64(7)))

	likes, err := db.IncrementLikes(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), likes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementLikes_StorageError(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE recipes SET likes = likes + 1`)).
		WithArgs("r1").
		WillReturnError(sql.ErrConnDone)

	_, err := db.IncrementLikes(context.Background(), "r1")
	assert.ErrorIs(t, err, apperr.ErrStorage)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestListRecipes_StorageError(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)

	mock.ExpectQuery(`SELECT .* FROM recipes ORDER BY seq`).
		WillReturnError(errors.New("no such table: recipes"))

	_, err := db.ListRecipes(context.Background())
	assert.ErrorIs(t, err, apperr.ErrStorage)
}

func TestListComments_SingleTransaction(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM recipes WHERE id = ?`)).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, recipe_id, author, text, created_at\s+FROM comments`).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipe_id", "author", "text", "created_at"}).
			AddRow("c1", "r1", "Ann", "Crunchy", created))
	mock.ExpectCommit()

	comments, err := db.ListComments(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Crunchy", comments[0].Text)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListComments_UnknownRecipeRollsBack(t *testing.T) {
	db, mock := newMockDB(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT 1 FROM recipes WHERE id = ?`)).
		WithArgs("gone").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectRollback()

	_, err := db.ListComments(context.Background(), "gone")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRebind(t *testing.T) {
	pg := New(nil, DialectPostgres)
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pg.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	lite := New(nil, DialectSQLite)
	assert.Equal(t, "SELECT ? ", lite.rebind("SELECT ? "))
}
