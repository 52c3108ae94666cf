package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"district/internal/logger"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_media",
		SQL: `CREATE TABLE IF NOT EXISTS media (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  filename     TEXT        NOT NULL UNIQUE,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  alt          TEXT        NOT NULL DEFAULT '',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_media_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_media_created_at ON media (created_at);`,
	},
	{
		Name: "create_table_globals",
		SQL: `CREATE TABLE IF NOT EXISTS globals (
  slug       TEXT        PRIMARY KEY,
  data       JSONB       NOT NULL DEFAULT '{}'::jsonb,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// sentinelQuery checks the last table created by the steps so a half-applied schema
// is migrated again.
const sentinelQuery = "SELECT to_regclass('public.globals') IS NOT NULL"

// EnsureMigrated creates the schema when the sentinel table is missing.
// Every step is idempotent, so a rerun after a partial failure is safe.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logger.Logger) error {
	start := time.Now()
	log = log.With(logger.String("component", "database"))

	var exists bool
	if err := db.QueryRowContext(ctx, sentinelQuery).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			logger.Error(err),
			logger.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", logger.String("reason", "schema already exists"))
		return nil
	}

	log.Info("db_migration_start", logger.Int("steps", len(steps)))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				logger.String("migration_step", step.Name),
				logger.Error(err),
				logger.Duration("duration", time.Since(start)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("db_migration_step",
			logger.String("migration_step", step.Name),
			logger.Duration("step_duration", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success", logger.Duration("duration", time.Since(start)))
	return nil
}
