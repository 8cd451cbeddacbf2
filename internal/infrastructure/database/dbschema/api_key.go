package dbschema

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"freemodels-server/services/catalog-api/internal/domain/apikey"
	"freemodels-server/services/catalog-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&APIKey{})
}

// APIKey represents persisted API key metadata and its saved preferences.
type APIKey struct {
	ID          string         `gorm:"type:uuid;primaryKey"`
	Name        string         `gorm:"type:varchar(128);not null"`
	Prefix      string         `gorm:"type:varchar(32);not null"`
	Suffix      string         `gorm:"type:varchar(8);not null"`
	Hash        string         `gorm:"type:varchar(128);not null;uniqueIndex"`
	Preferences datatypes.JSON `gorm:"type:jsonb"`
	RevokedAt   *time.Time
	LastUsedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EtoD converts schema model to domain representation.
func (k *APIKey) EtoD() *apikey.APIKey {
	if k == nil {
		return nil
	}
	var prefs apikey.Preferences
	if len(k.Preferences) > 0 {
		_ = json.Unmarshal(k.Preferences, &prefs)
	}
	return &apikey.APIKey{
		ID:          k.ID,
		Name:        k.Name,
		Prefix:      k.Prefix,
		Suffix:      k.Suffix,
		Hash:        k.Hash,
		Preferences: prefs,
		RevokedAt:   k.RevokedAt,
		LastUsedAt:  k.LastUsedAt,
		CreatedAt:   k.CreatedAt,
		UpdatedAt:   k.UpdatedAt,
	}
}

// NewSchemaAPIKey converts domain model to schema representation.
func NewSchemaAPIKey(key *apikey.APIKey) (*APIKey, error) {
	if key == nil {
		return nil, nil
	}
	prefs, err := json.Marshal(key.Preferences)
	if err != nil {
		return nil, err
	}
	return &APIKey{
		ID:          key.ID,
		Name:        key.Name,
		Prefix:      key.Prefix,
		Suffix:      key.Suffix,
		Hash:        key.Hash,
		Preferences: datatypes.JSON(prefs),
		RevokedAt:   key.RevokedAt,
		LastUsedAt:  key.LastUsedAt,
		CreatedAt:   key.CreatedAt,
		UpdatedAt:   key.UpdatedAt,
	}, nil
}
