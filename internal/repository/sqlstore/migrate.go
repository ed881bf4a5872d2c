package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

var migrationSet = migrate.MigrationSet{TableName: "schema_migrations"}

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFS,
		Root:       "migrations",
	}
}

// MigrateUp applies every pending migration and returns how many ran.
func MigrateUp(ctx context.Context, db *sqlx.DB) (int, error) {
	n, err := migrationSet.ExecContext(ctx, db.DB, db.DriverName(), migrationSource(), migrate.Up)
	if err != nil {
		return n, fmt.Errorf("failed to apply migrations: %w", err)
	}
	return n, nil
}

// MigrateDown rolls back at most steps migrations.
func MigrateDown(ctx context.Context, db *sqlx.DB, steps int) (int, error) {
	n, err := migrationSet.ExecMaxContext(ctx, db.DB, db.DriverName(), migrationSource(), migrate.Down, steps)
	if err != nil {
		return n, fmt.Errorf("failed to roll back migrations: %w", err)
	}
	return n, nil
}

// MigrationStatus describes one known migration.
type MigrationStatus struct {
	ID        string
	AppliedAt *time.Time
}

// Status lists every embedded migration with the time it was applied, if any.
func Status(db *sqlx.DB) ([]MigrationStatus, error) {
	migrations, err := migrationSource().FindMigrations()
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	records, err := migrationSet.GetMigrationRecords(db.DB, db.DriverName())
	if err != nil {
		return nil, fmt.Errorf("failed to read migration records: %w", err)
	}
	applied := make(map[string]time.Time, len(records))
	for _, r := range records {
		applied[r.Id] = r.AppliedAt
	}

	out := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		s := MigrationStatus{ID: m.Id}
		if at, ok := applied[m.Id]; ok {
			s.AppliedAt = &at
		}
		out = append(out, s)
	}
	return out, nil
}
