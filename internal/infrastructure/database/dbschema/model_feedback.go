package dbschema

import (
	"time"

	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&ModelFeedback{})
}

// ModelFeedback is one community success/issue report.
type ModelFeedback struct {
	ID            string    `gorm:"size:64;primaryKey"`
	ModelPublicID string    `gorm:"size:128;not null;index:idx_feedback_model_created,priority:1"`
	Success       bool      `gorm:"not null"`
	Issue         string    `gorm:"size:32"`
	Details       string    `gorm:"type:text"`
	Source        string    `gorm:"size:64;not null;default:'anonymous';index"`
	CreatedAt     time.Time `gorm:"not null;index;index:idx_feedback_model_created,priority:2"`
}

func (f *ModelFeedback) EtoD() *feedback.Feedback {
	if f == nil {
		return nil
	}
	return &feedback.Feedback{
		ID:            f.ID,
		ModelPublicID: f.ModelPublicID,
		Success:       f.Success,
		Issue:         feedback.Issue(f.Issue),
		Details:       f.Details,
		Source:        f.Source,
		CreatedAt:     f.CreatedAt,
	}
}

func NewSchemaModelFeedback(f *feedback.Feedback) *ModelFeedback {
	if f == nil {
		return nil
	}
	return &ModelFeedback{
		ID:            f.ID,
		ModelPublicID: f.ModelPublicID,
		Success:       f.Success,
		Issue:         string(f.Issue),
		Details:       f.Details,
		Source:        f.Source,
		CreatedAt:     f.CreatedAt,
	}
}
