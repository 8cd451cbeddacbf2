package feedback

import (
	"context"
	"sort"
	"strings"
	"time"

	"freemodels-server/services/catalog-api/internal/infrastructure/metrics"
	"freemodels-server/services/catalog-api/internal/utils/idgen"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

const (
	maxDetailsLength = 1000
	maxTimelineDays  = 90
)

// Service aggregates community feedback into per-model health statistics.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SubmitInput is a single success or issue report.
type SubmitInput struct {
	ModelPublicID string
	Success       bool
	Issue         string
	Details       string
	Source        string
}

// Submit validates and stores one feedback row.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*Feedback, error) {
	modelID := strings.TrimSpace(input.ModelPublicID)
	if modelID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "modelId is required", nil, "1c0e96fa-3f44-4f6e-9a34-8b5d2d7c91e0")
	}
	if !input.Success && !ValidIssue(input.Issue) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "issue must be one of rate_limited, unavailable, error", nil, "7b9f3d1a-52c8-4f07-b2e5-640a8f19ce73")
	}
	if len(input.Details) > maxDetailsLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "details too long", nil, "e5a2c874-0d11-49f5-9f6a-3db2c5a7f018")
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = SourceAnonymous
	}

	id, err := idgen.GenerateSecureID("fb", 16)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "generate feedback id")
	}

	fb := &Feedback{
		ID:            id,
		ModelPublicID: modelID,
		Success:       input.Success,
		Details:       input.Details,
		Source:        source,
		CreatedAt:     s.now().UTC(),
	}
	if !input.Success {
		fb.Issue = Issue(input.Issue)
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "store feedback")
	}
	metrics.RecordFeedback(fb.Success, string(fb.Issue))
	return fb, nil
}

// RecentCounts groups feedback inside the window by model. Pass an empty
// source for community-wide aggregation.
func (s *Service) RecentCounts(ctx context.Context, window TimeRange, source string) (map[string]Counts, error) {
	rows, err := s.findWindow(ctx, window, source)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]Counts)
	for _, fb := range rows {
		c := counts[fb.ModelPublicID]
		tally(&c, fb)
		counts[fb.ModelPublicID] = c
	}
	for id, c := range counts {
		c.ErrorRate = errorRate(c.Issues(), c.SuccessCount)
		counts[id] = c
	}
	return counts, nil
}

// Timeline buckets feedback counts over the window for charting. Bucket
// granularity scales with the range so charts keep a roughly constant number
// of points: minutes up to 1h, hours up to 24h, days beyond.
func (s *Service) Timeline(ctx context.Context, window TimeRange, source string) ([]TimelinePoint, error) {
	var since time.Time
	if d, bounded := window.Duration(); bounded {
		since = s.now().UTC().Add(-d)
	} else {
		// An unbounded window would bucket the whole table; charts only
		// render the trailing 90 days.
		since = s.now().UTC().AddDate(0, 0, -maxTimelineDays)
	}
	rows, err := s.repo.FindSince(ctx, since, source)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load feedback window")
	}

	bucketSize := BucketSize(window)
	buckets := make(map[time.Time]*TimelinePoint)
	for _, fb := range rows {
		key := fb.CreatedAt.UTC().Truncate(bucketSize)
		point, ok := buckets[key]
		if !ok {
			point = &TimelinePoint{Bucket: key}
			buckets[key] = point
		}
		if fb.Success {
			point.SuccessCount++
		} else {
			point.IssueCount++
		}
	}

	points := make([]TimelinePoint, 0, len(buckets))
	for _, point := range buckets {
		point.ErrorRate = errorRate(point.IssueCount, point.SuccessCount)
		points = append(points, *point)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Bucket.Before(points[j].Bucket) })
	return points, nil
}

// BucketSize picks the timeline granularity for a window.
func BucketSize(window TimeRange) time.Duration {
	switch window {
	case Range15m, Range30m, Range1h:
		return time.Minute
	case Range6h, Range24h:
		return time.Hour
	default:
		return 24 * time.Hour
	}
}

func (s *Service) findWindow(ctx context.Context, window TimeRange, source string) ([]*Feedback, error) {
	var since time.Time
	if d, bounded := window.Duration(); bounded {
		since = s.now().UTC().Add(-d)
	}
	rows, err := s.repo.FindSince(ctx, since, source)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load feedback window")
	}
	return rows, nil
}

func tally(c *Counts, fb *Feedback) {
	if fb.Success {
		c.SuccessCount++
		return
	}
	switch fb.Issue {
	case IssueRateLimited:
		c.RateLimited++
	case IssueUnavailable:
		c.Unavailable++
	default:
		c.Error++
	}
}

// errorRate is issues/(issues+successes) as a percentage; 0 when there is no
// data, never NaN.
func errorRate(issues, successes int) float64 {
	total := issues + successes
	if total == 0 {
		return 0
	}
	return float64(issues) / float64(total) * 100
}
