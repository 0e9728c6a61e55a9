package db

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/reflink/giveaway/internal/models"
)

var conn *gorm.DB

// Init opens the database and migrates the schema. A postgres:// (or
// postgresql://, as some platforms hand out) URL selects the postgres
// driver; anything else is treated as a sqlite file path.
func Init(databaseURL string) error {
	var dial gorm.Dialector
	sqliteMode := false

	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		dial = postgres.Open(databaseURL)
	} else {
		if databaseURL == "" {
			databaseURL = "giveaway.db"
		}
		dial = sqlite.Open(databaseURL + "?_journal_mode=WAL&_busy_timeout=5000")
		sqliteMode = true
	}

	var err error
	conn, err = gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	if sqliteMode {
		// SQLite works best with a single writer; cap the pool accordingly.
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	if err := conn.AutoMigrate(&models.Registrant{}); err != nil {
		return err
	}

	// Composite index for the email-OR-phone duplicate check; GORM does not
	// auto-create this from struct tags.
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_registrant_identity ON registrants(email, phone)")

	return nil
}

func Conn() *gorm.DB {
	return conn
}
