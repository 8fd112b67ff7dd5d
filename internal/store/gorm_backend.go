package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRecord is the single-row table holding the serialized snapshot.
type SnapshotRecord struct {
	Key       string         `gorm:"primaryKey;size:64"`
	Document  datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName names the snapshot table.
func (SnapshotRecord) TableName() string {
	return "snapshots"
}

// GormBackend persists the snapshot document in a relational database.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend constructs a GORM-backed snapshot store and migrates its table.
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&SnapshotRecord{}); err != nil {
		return nil, err
	}
	return &GormBackend{db: db}, nil
}

// Load implements Backend.
func (b *GormBackend) Load(ctx context.Context) ([]byte, error) {
	var record SnapshotRecord
	err := b.db.WithContext(ctx).First(&record, "key = ?", SnapshotKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return []byte(record.Document), nil
}

// Save implements Backend.
func (b *GormBackend) Save(ctx context.Context, data []byte) error {
	record := SnapshotRecord{
		Key:      SnapshotKey,
		Document: datatypes.JSON(data),
	}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&record).Error
}
