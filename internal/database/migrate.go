package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var embedded embed.FS

// RunMigrations applies all up migrations. An empty migrationsPath uses the
// migrations compiled into the binary.
func RunMigrations(dbPath, migrationsPath string) error {
	dsn := "sqlite3://" + dbPath

	var (
		m   *migrate.Migrate
		err error
	)
	if migrationsPath == "" {
		src, serr := iofs.New(embedded, "migrations")
		if serr != nil {
			return fmt.Errorf("open embedded migrations: %w", serr)
		}
		m, err = migrate.NewWithSourceInstance("iofs", src, dsn)
	} else {
		m, err = migrate.New(fmt.Sprintf("file://%s", migrationsPath), dsn)
	}
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
