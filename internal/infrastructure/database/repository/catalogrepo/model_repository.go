package catalogrepo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freemodels-server/services/catalog-api/internal/domain/catalog"
	"freemodels-server/services/catalog-api/internal/domain/query"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/dbschema"
	"freemodels-server/services/catalog-api/internal/infrastructure/database/transaction"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

type Repository struct {
	db *transaction.Database
}

func NewModelGormRepository(db *transaction.Database) catalog.ModelRepository {
	return &Repository{db: db}
}

// Upsert inserts the model or refreshes the existing row keyed by public ID.
// A model reappearing after deactivation flips back to active here.
func (r *Repository) Upsert(ctx context.Context, model *catalog.Model) error {
	row, err := dbschema.NewSchemaModel(model)
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "encode model")
	}
	err = r.db.GetTx(ctx).WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "public_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "context_length", "max_completion_tokens",
			"modality", "input_modalities", "output_modalities",
			"supported_parameters", "prompt_price", "completion_price",
			"is_active", "upstream_created_at", "last_seen_at", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "upsert model")
	}
	return nil
}

func (r *Repository) FindByPublicID(ctx context.Context, publicID string) (*catalog.Model, error) {
	var row dbschema.Model
	if err := r.db.GetTx(ctx).WithContext(ctx).Where("public_id = ?", publicID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "model not found", err, "f3b82c1d-7a46-4e09-9d5c-28e1f6a0b374")
		}
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "fetch model")
	}
	return row.EtoD(), nil
}

// FindByFilter runs the filter through the shared criteria scopes so the SQL
// path matches the in-memory predicates.
func (r *Repository) FindByFilter(ctx context.Context, filter catalog.ModelFilter, sort catalog.SortKey, p *query.Pagination) ([]*catalog.Model, error) {
	tx := r.db.GetTx(ctx).WithContext(ctx).Model(&dbschema.Model{})

	if filter.Active != nil {
		tx = tx.Where("is_active = ?", *filter.Active)
	}
	if filter.PublicIDs != nil {
		tx = tx.Where("public_id IN ?", *filter.PublicIDs)
	}
	if len(filter.ExcludeIDs) > 0 {
		tx = tx.Where("public_id NOT IN ?", filter.ExcludeIDs)
	}
	for _, uc := range filter.UseCases {
		if criterion, ok := catalog.UseCaseCriteria[uc]; ok {
			tx = tx.Scopes(criterion.Scope)
		}
	}

	if criterion, ok := catalog.SortCriteria[sort]; ok && criterion.OrderExpr != "" {
		tx = tx.Order(criterion.OrderExpr)
	} else {
		tx = tx.Order("context_length DESC")
	}

	if p != nil {
		if p.Limit != nil {
			tx = tx.Limit(*p.Limit)
		}
		if p.Offset != nil {
			tx = tx.Offset(*p.Offset)
		}
	}

	var rows []dbschema.Model
	if err := tx.Find(&rows).Error; err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "list models")
	}
	models := make([]*catalog.Model, 0, len(rows))
	for i := range rows {
		models = append(models, rows[i].EtoD())
	}
	return models, nil
}

func (r *Repository) ListPublicIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Model{}).
		Pluck("public_id", &ids).Error
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "list model ids")
	}
	return ids, nil
}

func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Model{}).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, err, "count active models")
	}
	return count, nil
}

func (r *Repository) MarkInactiveExcept(ctx context.Context, keep []string) (int64, error) {
	tx := r.db.GetTx(ctx).WithContext(ctx).
		Model(&dbschema.Model{}).
		Where("is_active = ?", true)
	if len(keep) > 0 {
		tx = tx.Where("public_id NOT IN ?", keep)
	}
	result := tx.Updates(map[string]interface{}{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerRepository, result.Error, "deactivate models")
	}
	return result.RowsAffected, nil
}
