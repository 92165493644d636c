package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rnaudit/pkg/log"

	_ "modernc.org/sqlite"
)

// ErrDatabaseError wraps failures of the external registry source.
var ErrDatabaseError = errors.New("registry database error")

// LoadSQLite merges carrier rows from an external SQLite number-plan table
// into the registry. The database is opened read-only; rows with a prefix of
// the wrong length are skipped with a warning rather than failing the load.
//
// Expected schema: carriers(prefix TEXT, carrier TEXT).
func (r *Registry) LoadSQLite(dbPath string) error {
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %w", ErrDatabaseError, err)
	}
	defer func() {
		if closeErr := database.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close registry database")
		}
	}()

	ctx := context.Background()

	if _, err := database.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return fmt.Errorf("%w: failed to enforce read-only mode: %w", ErrDatabaseError, err)
	}

	rows, err := database.QueryContext(ctx, "SELECT prefix, carrier FROM carriers")
	if err != nil {
		return fmt.Errorf("%w: failed to query carriers: %w", ErrDatabaseError, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close registry rows")
		}
	}()

	loaded := 0
	for rows.Next() {
		var prefix, carrier string
		if err := rows.Scan(&prefix, &carrier); err != nil {
			return fmt.Errorf("%w: failed to scan carrier row: %w", ErrDatabaseError, err)
		}
		if len(prefix) != prefixLength {
			log.Warn().Str("prefix", prefix).Msg("Skipping carrier row with invalid prefix length")
			continue
		}
		r.entries[prefix] = carrier
		loaded++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: failed to read carrier rows: %w", ErrDatabaseError, err)
	}

	log.Info().Int("carriers", loaded).Str("db", dbPath).Msg("Carrier registry loaded from SQLite")
	return nil
}
