// Package seed creates the default records the application expects to exist.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/avelichko/postline/internal/db"
)

// CreateDefaultData inserts the default group when the groups table is
// empty, so a fresh install has somewhere to publish. The check and the
// insert run in one transaction, and the whole thing is safe to run on
// every startup.
func CreateDefaultData(ctx context.Context, database *db.PostgresDB, lgr zerolog.Logger) error {
	return database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var count int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM groups`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count groups: %w", err)
		}

		if count > 0 {
			lgr.Debug().Int64("count", count).Msg("Groups already present, skipping default data")
			return nil
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO groups (title, slug, description) VALUES ($1, $2, $3)`,
			"General", "general", "Default group for posts that fit nowhere else")
		if err != nil {
			return fmt.Errorf("failed to create default group: %w", err)
		}

		lgr.Info().Str("slug", "general").Msg("Default group created")
		return nil
	})
}
