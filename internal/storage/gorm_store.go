package storage

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is a single persisted key-value entry.
type Blob struct {
	Key   string `gorm:"primaryKey;type:varchar(64)"`
	Value []byte
}

// GormStore is a GORM implementation of Store over a single blob table.
type GormStore struct {
	db *gorm.DB
}

// Open connects to the database selected by driver ("sqlite" or
// "postgres"), migrates the blob table and returns a store over it.
func Open(driver, dsn string) (*GormStore, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate blob table: %w", err)
	}
	return NewGormStore(db), nil
}

// NewGormStore creates a new instance of GormStore over an open connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

// Get returns the blob stored under key, or nil if the key is absent.
func (s *GormStore) Get(key string) ([]byte, error) {
	var blob Blob
	if err := s.db.First(&blob, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blob %s: %w", key, err)
	}
	return blob.Value, nil
}

// Set overwrites the blob stored under key.
func (s *GormStore) Set(key string, value []byte) error {
	blob := Blob{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to set blob %s: %w", key, err)
	}
	return nil
}
