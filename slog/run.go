package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/newsdigest"
)

// Ensure LoggingRunService implements newsdigest.RunService.
var _ newsdigest.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with debug logging of writes.
type LoggingRunService struct {
	next   newsdigest.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next newsdigest.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the stored run.
func (s *LoggingRunService) CreateRun(ctx context.Context, run *newsdigest.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("store run",
			"id", run.ID,
			"articles", len(run.Articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

// FindRunByID delegates to the wrapped service.
func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (*newsdigest.Run, error) {
	return s.next.FindRunByID(ctx, id)
}

// FindRuns delegates to the wrapped service.
func (s *LoggingRunService) FindRuns(ctx context.Context, filter newsdigest.RunFilter) ([]*newsdigest.Run, error) {
	return s.next.FindRuns(ctx, filter)
}
