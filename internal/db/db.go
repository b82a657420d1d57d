package db

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cvadnais/qr-tracker/internal/entities"
)

// OpenSQLite opens (or creates) the database at path and migrates the
// schema. The busy timeout keeps concurrent writers retrying instead of
// failing with "database is locked".
func OpenSQLite(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path+"?_busy_timeout=5000&_journal_mode=WAL"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(&entities.Link{}, &entities.ClickEvent{}); err != nil {
		return nil, err
	}

	return gdb, nil
}
