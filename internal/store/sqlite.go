package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvEntry is one stored key.
type kvEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey"`
	Value     string `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName specifies the table name for kvEntry
func (kvEntry) TableName() string {
	return "kv_entries"
}

// SQLiteBackend persists keys in a single SQLite table.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required)
type SQLiteBackend struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates
// the key-value table. Use ":memory:" for a throwaway database.
func OpenSQLite(path string, verbose bool) (*SQLiteBackend, error) {
	mode := logger.Silent
	if verbose {
		mode = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(mode),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite %s: %w", path, err)
	}
	return &SQLiteBackend{db: db}, nil
}

// Read implements Backend.Read.
func (b *SQLiteBackend) Read(key string) (string, bool, error) {
	var e kvEntry
	err := b.db.Where("entry_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

// Write implements Backend.Write as an upsert.
func (b *SQLiteBackend) Write(key, value string) error {
	e := kvEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	return b.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

// Delete implements Backend.Delete.
func (b *SQLiteBackend) Delete(key string) error {
	return b.db.Where("entry_key = ?", key).Delete(&kvEntry{}).Error
}

// Close releases the underlying connection pool.
func (b *SQLiteBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ Backend = (*SQLiteBackend)(nil)
