package dbschema

import (
	"time"

	"freemodels-server/services/catalog-api/internal/domain/availability"
	"freemodels-server/services/catalog-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&AvailabilitySnapshot{})
}

// AvailabilitySnapshot marks one model as present in the upstream catalog on
// one UTC day.
type AvailabilitySnapshot struct {
	ID            uint   `gorm:"primaryKey"`
	ModelPublicID string `gorm:"size:128;not null;uniqueIndex:idx_snapshot_model_day,priority:1"`
	Day           string `gorm:"size:10;not null;index;uniqueIndex:idx_snapshot_model_day,priority:2"`
	Present       bool   `gorm:"not null;default:true"`
	CreatedAt     time.Time
}

func (s *AvailabilitySnapshot) EtoD() *availability.Snapshot {
	if s == nil {
		return nil
	}
	return &availability.Snapshot{
		ModelPublicID: s.ModelPublicID,
		Day:           s.Day,
		Present:       s.Present,
		CreatedAt:     s.CreatedAt,
	}
}
