package requestlogrepo

import (
	"context"
	"time"

	"freemodels-server/services/catalog-api/internal/domain/requestlog"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/dbschema"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/transaction"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

type Repository struct {
	db *transaction.Database
}

func NewRequestLogGormRepository(db *transaction.Database) requestlog.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, log *requestlog.RequestLog) error {
	row := dbschema.NewSchemaRequestLog(log)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(row).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "create request log")
	}
	return nil
}

func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.GetTx(ctx).WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&dbschema.RequestLog{})
	if result.Error != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "delete aged request logs")
	}
	return result.RowsAffected, nil
}
