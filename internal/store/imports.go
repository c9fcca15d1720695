package store

import (
	"context"

	"github.com/starford/recipebox/internal/apperr"
	"github.com/starford/recipebox/internal/models"
)

// ImportRecords returns the import ledger keyed by file path.
func (db *DB) ImportRecords(ctx context.Context) (map[string]models.ImportRecord, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT path, checksum, recipe_id FROM imports`)
	if err != nil {
		return nil, apperr.Storage("import records", err)
	}
	defer rows.Close()

	out := make(map[string]models.ImportRecord)
	for rows.Next() {
		var rec models.ImportRecord
		if err := rows.Scan(&rec.Path, &rec.Checksum, &rec.RecipeID); err != nil {
			return nil, apperr.Storage("scan import record", err)
		}
		out[rec.Path] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage("import records", err)
	}
	return out, nil
}

// RecordImport inserts or replaces the ledger row for a file.
func (db *DB) RecordImport(ctx context.Context, rec models.ImportRecord) error {
	_, err := db.conn.ExecContext(ctx, db.rebind(`
		INSERT INTO imports (path, checksum, recipe_id)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			checksum  = excluded.checksum,
			recipe_id = excluded.recipe_id
	`), rec.Path, rec.Checksum, rec.RecipeID)
	if err != nil {
		return apperr.Storage("record import", err)
	}
	return nil
}

// ForgetImport drops the ledger row for a file. Missing rows are not an error.
func (db *DB) ForgetImport(ctx context.Context, path string) error {
	if _, err := db.conn.ExecContext(ctx, db.rebind(`DELETE FROM imports WHERE path = ?`), path); err != nil {
		return apperr.Storage("forget import", err)
	}
	return nil
}
