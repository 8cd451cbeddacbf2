package availability

import (
	"context"
	"time"
)

// Snapshot marks that a model was present in the upstream catalog on a given
// UTC day. Rows are append-only and idempotently upserted, so running the sync
// several times per day is safe.
type Snapshot struct {
	ModelPublicID string    `json:"model_id"`
	Day           string    `json:"day"` // YYYY-MM-DD, UTC
	Present       bool      `json:"present"`
	CreatedAt     time.Time `json:"-"`
}

// DayKey formats t as the UTC day bucket snapshots are keyed by.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

type Repository interface {
	RecordDay(ctx context.Context, day string, modelPublicIDs []string) error
	FindSince(ctx context.Context, firstDay string) ([]*Snapshot, error)
}

// MaxMatrixDays caps how far back the availability matrix endpoint reaches.
const MaxMatrixDays = 90

// Service shapes snapshots into the day-by-model matrix the dashboard renders.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Matrix groups snapshots from the trailing window into per-model day lists.
type Matrix struct {
	Days   []string            `json:"days"`
	Models map[string][]string `json:"models"` // model id -> days present
}

func (s *Service) Matrix(ctx context.Context, days int) (*Matrix, error) {
	if days <= 0 || days > MaxMatrixDays {
		days = MaxMatrixDays
	}

	now := s.now().UTC()
	firstDay := DayKey(now.AddDate(0, 0, -(days - 1)))
	snapshots, err := s.repo.FindSince(ctx, firstDay)
	if err != nil {
		return nil, err
	}

	matrix := &Matrix{
		Days:   make([]string, 0, days),
		Models: make(map[string][]string),
	}
	for i := days - 1; i >= 0; i-- {
		matrix.Days = append(matrix.Days, DayKey(now.AddDate(0, 0, -i)))
	}
	for _, snap := range snapshots {
		if !snap.Present {
			continue
		}
		matrix.Models[snap.ModelPublicID] = append(matrix.Models[snap.ModelPublicID], snap.Day)
	}
	return matrix, nil
}
