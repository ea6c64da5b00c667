package database

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jewel-tracker/internal/models"
)

const sqlitePrefix = "sqlite:"

// ErrNoDatabase is returned when no database URL is configured.
var ErrNoDatabase = errors.New("database: no database url configured")

// Initialize opens the snapshot database and migrates its schema.
// "sqlite:<path>" or a path ending in ".db" selects sqlite; anything else is
// treated as a MySQL DSN.
func Initialize(databaseURL string, log zerolog.Logger) (*gorm.DB, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	if databaseURL == "" {
		return nil, ErrNoDatabase
	}

	dialector, driver := dialectorFor(databaseURL)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if driver == "mysql" {
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// a sqlite :memory: database lives only as long as its connection
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&models.PriceSnapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate price_snapshots: %w", err)
	}

	log.Debug().Str("driver", driver).Msg("Database initialized successfully")
	return db, nil
}

func dialectorFor(databaseURL string) (gorm.Dialector, string) {
	if strings.HasPrefix(databaseURL, sqlitePrefix) {
		return sqlite.Open(strings.TrimPrefix(databaseURL, sqlitePrefix)), "sqlite"
	}
	if strings.HasSuffix(databaseURL, ".db") {
		return sqlite.Open(databaseURL), "sqlite"
	}
	return mysql.Open(databaseURL), "mysql"
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
