package dbschema

import (
	"time"

	"gorm.io/datatypes"

	"freemodels-server/services/catalog-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&AuditLog{})
}

// AuditLog is one persisted operator action.
type AuditLog struct {
	ID           uint           `gorm:"primaryKey"`
	Action       string         `gorm:"size:64;not null;index"`
	ResourceType string         `gorm:"size:64"`
	ResourceID   string         `gorm:"size:128"`
	Payload      datatypes.JSON `gorm:"type:jsonb"`
	IPAddress    string         `gorm:"size:64"`
	UserAgent    string         `gorm:"size:256"`
	StatusCode   int
	ErrorMessage string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"not null;index"`
}
