package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const busyTimeoutParam = "_busy_timeout=5000"

var (
	openGorm = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	dbPing = func(db *sql.DB) error { return db.Ping() }
)

// DSN appends a busy timeout to plain file paths so a concurrent writer
// waits on the engine's lock instead of failing immediately.
func DSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?" + busyTimeoutParam
}

// NewConnection opens the SQLite database file at path, creating it if the
// engine allows. The caller owns the returned handle and must close it.
func NewConnection(path string) (*gorm.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("failed to open database: empty path")
	}

	db, err := openGorm(DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		if c, ok := db.ConnPool.(io.Closer); ok {
			_ = c.Close()
		}
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; sqlite serialises writes anyway
	sqlDB.SetMaxOpenConns(1)

	if err := dbPing(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
