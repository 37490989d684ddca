package mock

import (
	"context"

	"github.com/fwojciec/newsdigest"
)

var _ newsdigest.RunService = (*RunService)(nil)

// RunService is a mock implementation of newsdigest.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *newsdigest.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*newsdigest.Run, error)
	FindRunsFn    func(ctx context.Context, filter newsdigest.RunFilter) ([]*newsdigest.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *newsdigest.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*newsdigest.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter newsdigest.RunFilter) ([]*newsdigest.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
