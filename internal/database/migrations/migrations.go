// Package migrations applies the embedded SQL schema files in lexical order.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
)

//go:embed sql/*.sql
var files embed.FS

// lockKey serializes concurrent Apply calls across processes.
const lockKey int64 = 7_340_912_118

// Versions lists the embedded migration versions in the order Apply runs them.
func Versions() ([]string, error) {
	entries, err := fs.ReadDir(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	versions := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}

		versions = append(versions, strings.TrimSuffix(e.Name(), ".sql"))
	}

	sort.Strings(versions)

	return versions, nil
}

// Apply runs every migration not yet recorded in schema_migrations. All
// pending files are applied in a single transaction.
func Apply(ctx context.Context, db *sql.DB) error {
	versions, err := Versions()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		return fmt.Errorf("acquiring migration lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	for _, v := range versions {
		var applied bool
		if err := tx.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", v,
		).Scan(&applied); err != nil {
			return fmt.Errorf("checking migration %s: %w", v, err)
		}

		if applied {
			continue
		}

		body, err := files.ReadFile("sql/" + v + ".sql")
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", v, err)
		}

		if _, err := tx.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("applying migration %s: %w", v, err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version) VALUES ($1)", v,
		); err != nil {
			return fmt.Errorf("recording migration %s: %w", v, err)
		}

		slog.Info("applied migration", "version", v)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	return nil
}
