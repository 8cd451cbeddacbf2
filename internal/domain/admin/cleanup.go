package admin

import (
	"context"
	"time"

	"freemodels-server/services/catalog-api/internal/domain/feedback"
	"freemodels-server/services/catalog-api/internal/domain/requestlog"
	"freemodels-server/services/catalog-api/internal/infrastructure/logger"
	"freemodels-server/services/catalog-api/internal/infrastructure/metrics"
	"freemodels-server/services/catalog-api/internal/utils/platformerrors"
)

// CleanupResult reports how many rows each retention pass removed and the
// cutoffs it used.
type CleanupResult struct {
	FeedbackDeleted    int64     `json:"feedbackDeleted"`
	RequestLogsDeleted int64     `json:"requestLogsDeleted"`
	FeedbackCutoff     time.Time `json:"feedbackCutoff"`
	RequestLogCutoff   time.Time `json:"requestLogCutoff"`
}

// TxRunner executes fn inside one database transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CleanupService trims aged feedback and request log rows. It runs nightly
// from the scheduler and on demand from the admin endpoint.
type CleanupService struct {
	tx             TxRunner
	feedbackRepo   feedback.Repository
	requestLogRepo requestlog.Repository
	feedbackTTL    time.Duration
	requestLogTTL  time.Duration
	now            func() time.Time
}

func NewCleanupService(
	tx TxRunner,
	feedbackRepo feedback.Repository,
	requestLogRepo requestlog.Repository,
	feedbackRetentionDays int,
	requestLogRetentionDays int,
) *CleanupService {
	if feedbackRetentionDays <= 0 {
		feedbackRetentionDays = 90
	}
	if requestLogRetentionDays <= 0 {
		requestLogRetentionDays = 30
	}
	return &CleanupService{
		tx:             tx,
		feedbackRepo:   feedbackRepo,
		requestLogRepo: requestLogRepo,
		feedbackTTL:    time.Duration(feedbackRetentionDays) * 24 * time.Hour,
		requestLogTTL:  time.Duration(requestLogRetentionDays) * 24 * time.Hour,
		now:            time.Now,
	}
}

// Run deletes everything past retention. Both passes share one transaction;
// a failure rolls the whole run back.
func (s *CleanupService) Run(ctx context.Context) (*CleanupResult, error) {
	log := logger.GetLogger()
	now := s.now().UTC()
	result := &CleanupResult{
		FeedbackCutoff:   now.Add(-s.feedbackTTL),
		RequestLogCutoff: now.Add(-s.requestLogTTL),
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		deleted, err := s.feedbackRepo.DeleteOlderThan(ctx, result.FeedbackCutoff)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "cleanup feedback")
		}
		result.FeedbackDeleted = deleted

		deleted, err = s.requestLogRepo.DeleteOlderThan(ctx, result.RequestLogCutoff)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "cleanup request logs")
		}
		result.RequestLogsDeleted = deleted
		return nil
	})
	if err != nil {
		return result, err
	}

	metrics.RecordCleanup("model_feedbacks", result.FeedbackDeleted)
	metrics.RecordCleanup("request_logs", result.RequestLogsDeleted)

	log.Info().
		Int64("feedback_deleted", result.FeedbackDeleted).
		Int64("request_logs_deleted", result.RequestLogsDeleted).
		Msg("retention cleanup complete")
	return result, nil
}
