package db

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                // needed
)

var (
	instance     *sql.DB
	instanceLock sync.Mutex
)

// Instance returns a database instance for the DSN
// The first successful call wins; later calls return the same handle.
func Instance(dsn string) (*sql.DB, error) {
	instanceLock.Lock()
	defer instanceLock.Unlock()

	if instance != nil {
		return instance, nil
	}

	dbh, err := Open(dsn)
	if err != nil {
		return nil, err
	}

	instance = dbh
	return instance, nil
}

// Open opens and pings a new database handle
func Open(dsn string) (*sql.DB, error) {
	dbh, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := dbh.Ping(); err != nil {
		_ = dbh.Close()
		return nil, err
	}

	return dbh, nil
}

// Migrate runs the migrations found in migrationsPath
func Migrate(dbh *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(dbh, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
