package feedbackrepo

import (
	"context"
	"time"

	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/dbschema"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/transaction"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

type Repository struct {
	db *transaction.Database
}

func NewFeedbackGormRepository(db *transaction.Database) feedback.Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, fb *feedback.Feedback) error {
	row := dbschema.NewSchemaModelFeedback(fb)
	if err := r.db.GetTx(ctx).WithContext(ctx).Create(row).Error; err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "create feedback")
	}
	return nil
}

func (r *Repository) FindSince(ctx context.Context, since time.Time, source string) ([]*feedback.Feedback, error) {
	tx := r.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.ModelFeedback{})
	if !since.IsZero() {
		tx = tx.Where("created_at >= ?", since)
	}
	if source != "" {
		tx = tx.Where("source = ?", source)
	}

	var rows []dbschema.ModelFeedback
	if err := tx.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "list feedback")
	}
	out := make([]*feedback.Feedback, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].EtoD())
	}
	return out, nil
}

func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.GetTx(ctx).WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&dbschema.ModelFeedback{})
	if result.Error != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "delete aged feedback")
	}
	return result.RowsAffected, nil
}
