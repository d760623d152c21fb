package store

import (
	"context"
	"database/sql"
	"strings"
)

// schema contains the DDL for the resolution history.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS resolutions (
		id              TEXT PRIMARY KEY,
		language        TEXT NOT NULL,
		uri             TEXT NOT NULL,
		branch          TEXT NOT NULL,
		descriptor_path TEXT NOT NULL,
		commit_sha      TEXT NOT NULL DEFAULT '',
		valid           INTEGER NOT NULL DEFAULT 0,
		secondary_count INTEGER NOT NULL DEFAULT 0,
		duration_ms     INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resolutions_language ON resolutions(language)`,
	`CREATE INDEX IF NOT EXISTS idx_resolutions_created_at ON resolutions(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_resolutions_uri ON resolutions(uri, branch)`,
}

// alterStatements are column additions that need special handling since
// SQLite doesn't support IF NOT EXISTS for ALTER TABLE ADD COLUMN.
var alterStatements = []struct {
	table    string
	column   string
	alterSQL string
	indexSQL string // Optional index to create after column is added
}{
	// Per-file validation messages, JSON encoded.
	{
		table:    "resolutions",
		column:   "messages",
		alterSQL: "ALTER TABLE resolutions ADD COLUMN messages TEXT NOT NULL DEFAULT '{}'",
	},
}

// migrate executes all schema DDL statements, alter migrations, and post-migration indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	for _, alter := range alterStatements {
		if err := addColumnIfNotExists(ctx, db, alter.table, alter.column, alter.alterSQL); err != nil {
			return err
		}
		if alter.indexSQL != "" {
			if _, err := db.ExecContext(ctx, alter.indexSQL); err != nil {
				return err
			}
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, alterSQL string) error {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue *string
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, column) {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = db.ExecContext(ctx, alterSQL)
	return err
}
