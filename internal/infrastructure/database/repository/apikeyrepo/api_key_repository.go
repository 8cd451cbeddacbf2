package apikeyrepo

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"freemodels-server/services/catalog-api/internal/domain/apikey"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/dbschema"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/transaction"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

type Repository struct {
	db *transaction.Database
}

func NewAPIKeyRepository(db *transaction.Database) apikey.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, key *apikey.APIKey) (*apikey.APIKey, error) {
	row, err := dbschema.NewSchemaAPIKey(key)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "encode api key")
	}
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(row).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to create api key")
	}
	return row.EtoD(), nil
}

func (r *Repository) FindByHash(ctx context.Context, hash string) (*apikey.APIKey, error) {
	var row dbschema.APIKey
	if err := r.db.GetTx(ctx).WithContext(ctx).Where("hash = ?", hash).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to fetch api key by hash")
	}
	return row.EtoD(), nil
}

func (r *Repository) UpdatePreferences(ctx context.Context, id string, prefs apikey.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "encode preferences")
	}
	err = r.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.APIKey{}).
		Where("id = ?", id).
		Update("preferences", datatypes.JSON(data)).Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to save preferences")
	}
	return nil
}

func (r *Repository) TouchLastUsed(ctx context.Context, id string, at time.Time) error {
	return r.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.APIKey{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
}

func (r *Repository) MarkRevoked(ctx context.Context, id string, revokedAt time.Time) error {
	err := r.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.APIKey{}).
		Where("id = ?", id).
		Update("revoked_at", revokedAt).Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "failed to revoke api key")
	}
	return nil
}
