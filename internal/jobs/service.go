package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hustlex/hustlexbot/core/logger"
)

// Service bounds repository reads for the jobs browser. A Service without a
// repository lists nothing, so the bot works without a database.
type Service struct {
	repo    Repository
	limit   int
	timeout time.Duration
}

// NewService returns a Service reading at most limit jobs within timeout.
func NewService(repo Repository, limit int, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: repo, limit: limit, timeout: timeout}
}

// Enabled reports whether jobs are read from a repository.
func (s *Service) Enabled() bool {
	return s != nil && s.repo != nil && s.limit > 0
}

// Latest returns the newest public jobs. Errors are logged and returned so
// the caller can still answer with the static message.
func (s *Service) Latest(ctx context.Context) ([]Job, error) {
	if !s.Enabled() {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.repo.Latest(ctx, s.limit)
	if err != nil {
		logger.Warn(ctx, "service.jobs", "jobs.latest",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	return out, nil
}
