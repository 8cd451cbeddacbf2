package syncmetarepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freemodels-server/services/catalog-api/internal/domain/syncmeta"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/dbschema"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/transaction"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

type Repository struct {
	db *transaction.Database
}

func NewSyncMetaGormRepository(db *transaction.Database) syncmeta.Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, key string) (*syncmeta.Entry, error) {
	var row dbschema.SyncMeta
	if err := r.db.GetTx(ctx).WithContext(ctx).Where("key = ?", key).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "fetch sync meta")
	}
	return row.EtoD(), nil
}

func (r *Repository) Upsert(ctx context.Context, key, value string) error {
	row := dbschema.SyncMeta{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := r.db.GetTx(ctx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "upsert sync meta")
	}
	return nil
}
