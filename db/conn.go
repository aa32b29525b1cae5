// Package db opens the gorm connection backing the store
package db

import (
	"bitwise74/user-api/internal/model"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database and migrates the users and files tables.
// Duplicate key violations are translated to gorm.ErrDuplicatedKey
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case DriverSQLite:
		if err := checkMounted(dsn, IsRunningInDocker()); err != nil {
			return nil, err
		}

		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", driver, err)
	}

	err = db.AutoMigrate(&model.User{}, &model.File{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

// checkMounted refuses to create a relative sqlite file inside a container,
// the host should mount it with a volume instead. Absolute paths, in-memory
// databases and file: URIs are left to the caller
func checkMounted(dsn string, inDocker bool) error {
	if !inDocker || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") || filepath.IsAbs(dsn) {
		return nil
	}

	if _, err := os.Stat(dsn); errors.Is(err, fs.ErrNotExist) {
		p, absErr := filepath.Abs(dsn)
		if absErr != nil {
			p = dsn
		}

		return fmt.Errorf("SQLite database file not mounted, please use docker volumes to mount it to %s", p)
	}

	return nil
}
