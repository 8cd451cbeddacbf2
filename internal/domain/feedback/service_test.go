package feedback

import (
	"context"
	"testing"
	"time"
)

type memoryRepo struct {
	rows []*Feedback
}

func (r *memoryRepo) Create(_ context.Context, fb *Feedback) error {
	r.rows = append(r.rows, fb)
	return nil
}

func (r *memoryRepo) FindSince(_ context.Context, since time.Time, source string) ([]*Feedback, error) {
	var out []*Feedback
	for _, fb := range r.rows {
		if !since.IsZero() && fb.CreatedAt.Before(since) {
			continue
		}
		if source != "" && fb.Source != source {
			continue
		}
		out = append(out, fb)
	}
	return out, nil
}

func (r *memoryRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*Feedback
	var deleted int64
	for _, fb := range r.rows {
		if fb.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, fb)
	}
	r.rows = kept
	return deleted, nil
}

func fixedService(repo *memoryRepo, now time.Time) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func TestErrorRateComputation(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	repo := &memoryRepo{}
	for i := 0; i < 98; i++ {
		repo.rows = append(repo.rows, &Feedback{ModelPublicID: "m", Success: true, Source: SourceAnonymous, CreatedAt: now})
	}
	repo.rows = append(repo.rows,
		&Feedback{ModelPublicID: "m", Issue: IssueError, Source: SourceAnonymous, CreatedAt: now},
		&Feedback{ModelPublicID: "m", Issue: IssueRateLimited, Source: SourceAnonymous, CreatedAt: now},
	)

	svc := fixedService(repo, now)
	counts, err := svc.RecentCounts(context.Background(), Range24h, "")
	if err != nil {
		t.Fatalf("RecentCounts() error = %v", err)
	}

	c := counts["m"]
	if c.SuccessCount != 98 {
		t.Errorf("SuccessCount = %d, want 98", c.SuccessCount)
	}
	if c.Issues() != 2 {
		t.Errorf("Issues() = %d, want 2", c.Issues())
	}
	if c.ErrorRate != 2.0 {
		t.Errorf("ErrorRate = %v, want 2.0", c.ErrorRate)
	}
}

func TestErrorRateEmptyWindow(t *testing.T) {
	now := time.Now().UTC()
	svc := fixedService(&memoryRepo{}, now)

	counts, err := svc.RecentCounts(context.Background(), Range15m, "")
	if err != nil {
		t.Fatalf("RecentCounts() error = %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("expected empty counts, got %v", counts)
	}

	// Zero issues and zero successes must never divide by zero.
	if got := errorRate(0, 0); got != 0 {
		t.Errorf("errorRate(0,0) = %v, want 0", got)
	}
}

func TestRecentCountsScopedToSource(t *testing.T) {
	now := time.Now().UTC()
	repo := &memoryRepo{rows: []*Feedback{
		{ModelPublicID: "m", Success: true, Source: "key-1", CreatedAt: now},
		{ModelPublicID: "m", Issue: IssueUnavailable, Source: "key-2", CreatedAt: now},
	}}
	svc := fixedService(repo, now)

	counts, err := svc.RecentCounts(context.Background(), Range24h, "key-1")
	if err != nil {
		t.Fatalf("RecentCounts() error = %v", err)
	}
	c := counts["m"]
	if c.SuccessCount != 1 || c.Issues() != 0 {
		t.Errorf("scoped counts = %+v, want 1 success and 0 issues", c)
	}
}

func TestRecentCountsWindowBound(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &memoryRepo{rows: []*Feedback{
		{ModelPublicID: "m", Success: true, Source: SourceAnonymous, CreatedAt: now.Add(-10 * time.Minute)},
		{ModelPublicID: "m", Issue: IssueError, Source: SourceAnonymous, CreatedAt: now.Add(-2 * time.Hour)},
	}}
	svc := fixedService(repo, now)

	counts, err := svc.RecentCounts(context.Background(), Range15m, "")
	if err != nil {
		t.Fatalf("RecentCounts() error = %v", err)
	}
	c := counts["m"]
	if c.SuccessCount != 1 || c.Issues() != 0 {
		t.Errorf("counts = %+v, want the 2h-old issue excluded from 15m window", c)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := NewService(&memoryRepo{})
	ctx := context.Background()

	tests := []struct {
		name    string
		input   SubmitInput
		wantErr bool
	}{
		{name: "success report", input: SubmitInput{ModelPublicID: "m", Success: true}},
		{name: "issue report", input: SubmitInput{ModelPublicID: "m", Issue: "rate_limited"}},
		{name: "missing model", input: SubmitInput{Success: true}, wantErr: true},
		{name: "unknown issue", input: SubmitInput{ModelPublicID: "m", Issue: "on_fire"}, wantErr: true},
		{name: "oversized details", input: SubmitInput{ModelPublicID: "m", Success: true, Details: string(make([]byte, 1001))}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Submit() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitDefaultsAnonymousSource(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	fb, err := svc.Submit(context.Background(), SubmitInput{ModelPublicID: "m", Success: true})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if fb.Source != SourceAnonymous {
		t.Errorf("Source = %q, want %q", fb.Source, SourceAnonymous)
	}
}

func TestTimelineBucketGranularity(t *testing.T) {
	tests := []struct {
		window TimeRange
		want   time.Duration
	}{
		{Range15m, time.Minute},
		{Range30m, time.Minute},
		{Range1h, time.Minute},
		{Range6h, time.Hour},
		{Range24h, time.Hour},
		{Range7d, 24 * time.Hour},
		{Range30d, 24 * time.Hour},
		{RangeAll, 24 * time.Hour},
	}
	for _, tt := range tests {
		if got := BucketSize(tt.window); got != tt.want {
			t.Errorf("BucketSize(%s) = %v, want %v", tt.window, got, tt.want)
		}
	}
}

func TestTimelineBucketsOrderedAndAggregated(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &memoryRepo{rows: []*Feedback{
		{ModelPublicID: "m", Success: true, Source: SourceAnonymous, CreatedAt: now.Add(-3 * time.Minute)},
		{ModelPublicID: "m", Issue: IssueError, Source: SourceAnonymous, CreatedAt: now.Add(-3*time.Minute + 10*time.Second)},
		{ModelPublicID: "m", Success: true, Source: SourceAnonymous, CreatedAt: now.Add(-1 * time.Minute)},
	}}
	svc := fixedService(repo, now)

	points, err := svc.Timeline(context.Background(), Range15m, "")
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("Timeline() returned %d points, want 2", len(points))
	}
	if !points[0].Bucket.Before(points[1].Bucket) {
		t.Error("timeline points not ordered by bucket")
	}
	first := points[0]
	if first.SuccessCount != 1 || first.IssueCount != 1 || first.ErrorRate != 50 {
		t.Errorf("first bucket = %+v, want 1 success, 1 issue, 50%% error rate", first)
	}
}

func TestParseTimeRange(t *testing.T) {
	if got := ParseTimeRange("7d"); got != Range7d {
		t.Errorf("ParseTimeRange(7d) = %v", got)
	}
	if got := ParseTimeRange("all"); got != RangeAll {
		t.Errorf("ParseTimeRange(all) = %v", got)
	}
	if got := ParseTimeRange("fortnight"); got != DefaultTimeRange {
		t.Errorf("ParseTimeRange(unknown) = %v, want default", got)
	}
}
