package availabilityrepo

import (
	"context"

	"gorm.io/gorm/clause"

	"freemodels-server/services/catalog-api/internal/domain/availability"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/dbschema"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/transaction"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

type Repository struct {
	db *transaction.Database
}

func NewSnapshotGormRepository(db *transaction.Database) availability.Repository {
	return &Repository{db: db}
}

// RecordDay upserts one presence row per model for the given day. Re-running
// the sync within a day is a no-op.
func (r *Repository) RecordDay(ctx context.Context, day string, modelPublicIDs []string) error {
	if len(modelPublicIDs) == 0 {
		return nil
	}
	rows := make([]dbschema.AvailabilitySnapshot, 0, len(modelPublicIDs))
	for _, id := range modelPublicIDs {
		rows = append(rows, dbschema.AvailabilitySnapshot{
			ModelPublicID: id,
			Day:           day,
			Present:       true,
		})
	}
	err := r.db.GetTx(ctx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_public_id"}, {Name: "day"}},
		DoNothing: true,
	}).CreateInBatches(rows, 200).Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "record availability snapshots")
	}
	return nil
}

func (r *Repository) FindSince(ctx context.Context, firstDay string) ([]*availability.Snapshot, error) {
	var rows []dbschema.AvailabilitySnapshot
	err := r.db.GetTx(ctx).WithContext(ctx).
		Where("day >= ?", firstDay).
		Order("day ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "list availability snapshots")
	}
	out := make([]*availability.Snapshot, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}
