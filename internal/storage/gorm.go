package storage

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slot is the durable row behind one collection key.
type Slot struct {
	Key   string `gorm:"primaryKey;size:128"`
	Value JSONB  `gorm:"type:jsonb"`
}

// Gorm stores slots in Postgres. One row per collection key, upserted whole.
type Gorm struct {
	db *gorm.DB
}

// NewGorm opens the database and runs the slot migration.
func NewGorm(dsn string) (*Gorm, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(key string) ([]byte, bool, error) {
	var row Slot
	if err := g.db.First(&row, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(row.Value), true, nil
}

func (g *Gorm) Set(key string, value []byte) error {
	row := Slot{Key: key, Value: JSONB(value)}
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
}
