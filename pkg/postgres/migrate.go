package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationStatus is the schema version recorded by the migrator.
type MigrationStatus struct {
	Version uint
	Dirty   bool
	// None is set when no migration has been applied yet.
	None bool
}

func (s MigrationStatus) String() string {
	switch {
	case s.None:
		return "no migrations applied"
	case s.Dirty:
		return fmt.Sprintf("version %d (dirty)", s.Version)
	default:
		return fmt.Sprintf("version %d", s.Version)
	}
}

// RunMigrations applies every pending migration found at source to the database behind dsn.
func RunMigrations(source, dsn string) error {
	const op = "postgres.RunMigrations"

	return withMigrator(op, source, dsn, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("%s: failed to run migrations: %w", op, err)
		}
		return nil
	})
}

// RollbackMigrations reverts the last steps migrations.
func RollbackMigrations(source, dsn string, steps int) error {
	const op = "postgres.RollbackMigrations"

	if steps <= 0 {
		return fmt.Errorf("%s: steps must be positive, got %d", op, steps)
	}

	return withMigrator(op, source, dsn, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("%s: failed to roll back migrations: %w", op, err)
		}
		return nil
	})
}

// MigrationVersion reports the current schema version.
func MigrationVersion(source, dsn string) (MigrationStatus, error) {
	const op = "postgres.MigrationVersion"

	var status MigrationStatus

	err := withMigrator(op, source, dsn, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			status.None = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: failed to read version: %w", op, err)
		}

		status.Version, status.Dirty = version, dirty
		return nil
	})

	return status, err
}

func withMigrator(op, source, dsn string, fn func(*migrate.Migrate) error) error {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("%s: failed to initialize migrations: %w", op, err)
	}
	defer m.Close()

	return fn(m)
}
