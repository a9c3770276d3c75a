package app

import (
	"context"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pkg/errors"

	"github.com/ipryshchepa/FTG12-sub001/internal/utils"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationsTable records the applied schema version.
const MigrationsTable = "schema_migrations"

// migrationSource reads the embedded NNNN_name.up.sql files.
func migrationSource() (source.Driver, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	return src, errors.Wrap(err, "open embedded migrations")
}

// Migrate brings the schema up to the newest embedded migration and returns
// the resulting schema version. Cancelling ctx stops after the migration in
// flight.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (uint, error) {
	src, err := migrationSource()
	if err != nil {
		return 0, err
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	driver, err := migratepgx.WithInstance(sqlDB, &migratepgx.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		_ = sqlDB.Close()
		return 0, errors.Wrap(err, "open migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx", driver)
	if err != nil {
		_ = driver.Close()
		return 0, errors.Wrap(err, "create migrator")
	}
	defer m.Close()
	m.Log = migrateLogger{}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			m.GracefulStop <- true
		case <-done:
		}
	}()

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		utils.Logger.Info("Schema is up to date")
	case err != nil:
		return 0, errors.Wrap(err, "apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil {
		return 0, errors.Wrap(err, "read schema version")
	}
	if dirty {
		return version, errors.Errorf("schema version %d is dirty", version)
	}
	utils.Logger.WithField("version", version).Info("Schema migrated")
	return version, nil
}

// migrateLogger routes golang-migrate output through the service logger.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	utils.Logger.Debugf(format, v...)
}

func (migrateLogger) Verbose() bool { return false }
