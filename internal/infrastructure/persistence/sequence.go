package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/seeder/internal/domain/sales"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sequenceRow backs the per-store document counters
type sequenceRow struct {
	StoreID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind      string    `gorm:"type:varchar(20);primaryKey"`
	Value     int64     `gorm:"not null"`
	UpdatedAt time.Time
}

func (sequenceRow) TableName() string {
	return "sales_sequences"
}

// GormSequenceGenerator issues zero-padded increment IDs per store and
// document kind, one counter row per (store, kind) pair.
type GormSequenceGenerator struct {
	db *gorm.DB
}

// NewGormSequenceGenerator creates a new GormSequenceGenerator
func NewGormSequenceGenerator(db *gorm.DB) *GormSequenceGenerator {
	return &GormSequenceGenerator{db: db}
}

var _ sales.SequenceGenerator = (*GormSequenceGenerator)(nil)

// Next reserves and returns the next increment ID for the store and kind
func (g *GormSequenceGenerator) Next(ctx context.Context, storeID uuid.UUID, kind sales.EntityKind) (string, error) {
	var next int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := sequenceRow{StoreID: storeID, Kind: string(kind), Value: 1, UpdatedAt: time.Now()}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}, {Name: "kind"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      gorm.Expr("sales_sequences.value + 1"),
				"updated_at": time.Now(),
			}),
		}).Create(&row)
		if res.Error != nil {
			return res.Error
		}

		var current sequenceRow
		if err := tx.Where("store_id = ? AND kind = ?", storeID, string(kind)).First(&current).Error; err != nil {
			return err
		}
		next = current.Value
		return nil
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%09d", next), nil
}
