package feedback

import (
	"context"
	"time"
)

// Issue categorizes a failed interaction with a model.
type Issue string

const (
	IssueRateLimited Issue = "rate_limited"
	IssueUnavailable Issue = "unavailable"
	IssueError       Issue = "error"
)

// ValidIssue reports whether raw is a known issue category.
func ValidIssue(raw string) bool {
	switch Issue(raw) {
	case IssueRateLimited, IssueUnavailable, IssueError:
		return true
	}
	return false
}

// SourceAnonymous marks feedback submitted without an API key.
const SourceAnonymous = "anonymous"

// Feedback is one immutable success/issue report about a model. Rows are only
// ever read in aggregate.
type Feedback struct {
	ID            string    `json:"id"`
	ModelPublicID string    `json:"model_id"`
	Success       bool      `json:"success"`
	Issue         Issue     `json:"issue,omitempty"`
	Details       string    `json:"details,omitempty"`
	Source        string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

// TimeRange is a requested aggregation window.
type TimeRange string

const (
	Range15m TimeRange = "15m"
	Range30m TimeRange = "30m"
	Range1h  TimeRange = "1h"
	Range6h  TimeRange = "6h"
	Range24h TimeRange = "24h"
	Range7d  TimeRange = "7d"
	Range30d TimeRange = "30d"
	RangeAll TimeRange = "all"

	DefaultTimeRange = Range24h
)

var rangeDurations = map[TimeRange]time.Duration{
	Range15m: 15 * time.Minute,
	Range30m: 30 * time.Minute,
	Range1h:  time.Hour,
	Range6h:  6 * time.Hour,
	Range24h: 24 * time.Hour,
	Range7d:  7 * 24 * time.Hour,
	Range30d: 30 * 24 * time.Hour,
}

// ParseTimeRange maps a raw token to a known range, defaulting on unknown
// input rather than erroring.
func ParseTimeRange(raw string) TimeRange {
	r := TimeRange(raw)
	if r == RangeAll {
		return r
	}
	if _, ok := rangeDurations[r]; ok {
		return r
	}
	return DefaultTimeRange
}

// Duration returns the window length and whether it is bounded ("all" is not).
func (r TimeRange) Duration() (time.Duration, bool) {
	d, ok := rangeDurations[r]
	return d, ok
}

// Counts aggregates feedback for one model inside a window.
type Counts struct {
	RateLimited  int     `json:"rateLimited"`
	Unavailable  int     `json:"unavailable"`
	Error        int     `json:"error"`
	SuccessCount int     `json:"successCount"`
	ErrorRate    float64 `json:"errorRate"`
}

// Issues returns the total number of issue reports.
func (c Counts) Issues() int {
	return c.RateLimited + c.Unavailable + c.Error
}

// TimelinePoint is one chart bucket.
type TimelinePoint struct {
	Bucket       time.Time `json:"bucket"`
	SuccessCount int       `json:"successCount"`
	IssueCount   int       `json:"issueCount"`
	ErrorRate    float64   `json:"errorRate"`
}

type Repository interface {
	Create(ctx context.Context, fb *Feedback) error
	// FindSince returns feedback created at or after since (zero time means
	// unbounded), optionally scoped to one source.
	FindSince(ctx context.Context, since time.Time, source string) ([]*Feedback, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
