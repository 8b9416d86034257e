// Package migrate applies the storefront schema from embedded SQL
// files, so the binary carries its own migrations.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	gomigrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed sql/*.sql
var schemaFS embed.FS

// Apply brings the schema up to the latest embedded migration. Already
// being current is not an error.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	m, cleanup, err := newMigrator(ctx, pool)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Up(); err != nil && !errors.Is(err, gomigrate.ErrNoChange) {
		return fmt.Errorf("apply schema migrations: %w", err)
	}
	return nil
}

// Status reports the current schema version and whether a previous run
// left it dirty. A database with no migrations applied reports version
// zero.
func Status(ctx context.Context, pool *pgxpool.Pool) (version uint, dirty bool, err error) {
	m, cleanup, err := newMigrator(ctx, pool)
	if err != nil {
		return 0, false, err
	}
	defer cleanup()

	version, dirty, err = m.Version()
	if errors.Is(err, gomigrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}

// newMigrator bridges the pgx pool to golang-migrate, which drives a
// database/sql connection of its own.
func newMigrator(ctx context.Context, pool *pgxpool.Pool) (*gomigrate.Migrate, func(), error) {
	src, err := iofs.New(schemaFS, "sql")
	if err != nil {
		return nil, nil, fmt.Errorf("load embedded migrations: %w", err)
	}

	sqlDB, err := sql.Open("pgx", pool.Config().ConnString())
	if err != nil {
		return nil, nil, fmt.Errorf("open migration connection: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("ping migration connection: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("init migration driver: %w", err)
	}

	m, err := gomigrate.NewWithInstance("iofs", src, "pgx", driver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("init migrator: %w", err)
	}
	cleanup := func() {
		m.Close()
	}
	return m, cleanup, nil
}
