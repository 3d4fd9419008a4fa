package db

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RunMigrations applies every pending migration under migrationsPath.
// A dirty schema is forced back to its recorded version before retrying.
func RunMigrations(databaseURL, migrationsPath string, log *zap.Logger) error {
	dbConn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer dbConn.Close()

	driver, err := postgres.WithInstance(dbConn, &postgres.Config{})
	if err != nil {
		return errors.Wrap(err, "create postgres driver")
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return errors.Wrap(err, "create migrate instance")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return errors.Wrap(err, "read migration version")
	}

	if dirty {
		log.Warn("database is dirty, forcing version", zap.Uint("version", version))
		if err := m.Force(int(version)); err != nil {
			return errors.Wrap(err, "force migration version")
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "apply migrations")
	}

	log.Info("database migrations completed")
	return nil
}
