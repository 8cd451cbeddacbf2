package dbschema

import (
	"time"

	"freemodels-server/services/catalog-api/internal/domain/syncmeta"
	"freemodels-server/services/catalog-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&SyncMeta{})
}

// SyncMeta is a small key/value table for sync bookkeeping, most importantly
// the last successful catalog refresh timestamp.
type SyncMeta struct {
	Key       string `gorm:"size:64;primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (m *SyncMeta) EtoD() *syncmeta.Entry {
	if m == nil {
		return nil
	}
	return &syncmeta.Entry{
		Key:       m.Key,
		Value:     m.Value,
		UpdatedAt: m.UpdatedAt,
	}
}
