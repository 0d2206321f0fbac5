// Package loader persists generated datasets into the analytics warehouse.
package loader

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	accountdomain "github.com/smallbiznis/teleforge/internal/account/domain"
	"github.com/smallbiznis/teleforge/internal/export"
	generatordomain "github.com/smallbiznis/teleforge/internal/generator/domain"
	"github.com/smallbiznis/teleforge/pkg/db"
)

const batchSize = 500

// Manifest records one loaded dataset and the parameters that produced it,
// so a dataset can be regenerated bit-for-bit from its manifest.
type Manifest struct {
	ID        string            `gorm:"column:id;primaryKey" json:"id"`
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
	Accounts  int               `gorm:"column:accounts" json:"accounts"`
	Records   int64             `gorm:"column:records" json:"records"`
	Params    datatypes.JSONMap `gorm:"column:params" json:"params"`
}

// TableName sets the database table name.
func (Manifest) TableName() string { return "dataset_manifests" }

type Param struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Loader struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Param) *Loader {
	return &Loader{
		db:  p.DB,
		log: p.Log.Named("loader"),
	}
}

// Migrate creates the warehouse tables if they do not exist.
func (l *Loader) Migrate(ctx context.Context) error {
	return l.db.WithContext(ctx).AutoMigrate(
		&Manifest{},
		&generatordomain.UsageRecord{},
		&generatordomain.ChurnRecord{},
		&accountdomain.AttributeRow{},
	)
}

// Load writes the bundle and its manifest in one transaction. Duplicate key
// errors mean the dataset was already loaded and are not treated as failures.
func (l *Loader) Load(ctx context.Context, m Manifest, b export.Bundle) error {
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if len(b.Usage) > 0 {
			if err := tx.CreateInBatches(b.Usage, batchSize).Error; err != nil {
				return err
			}
		}
		if len(b.Churn) > 0 {
			if err := tx.CreateInBatches(b.Churn, batchSize).Error; err != nil {
				return err
			}
		}
		if len(b.Attributes) > 0 {
			if err := tx.CreateInBatches(b.Attributes, batchSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			l.log.Warn("dataset already loaded", zap.String("dataset_id", m.ID))
			return nil
		}
		return err
	}

	l.log.Info("dataset loaded",
		zap.String("dataset_id", m.ID),
		zap.Int("accounts", m.Accounts),
		zap.Int64("records", m.Records),
	)
	return nil
}
