package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

type aggregateRepository interface {
	Increment(ctx context.Context, kind models.AggregateKind, name string) (*models.Aggregate, error)
	List(ctx context.Context, kind models.AggregateKind, activeOnly bool) ([]models.Aggregate, error)
	FindByID(ctx context.Context, kind models.AggregateKind, id string) (*models.Aggregate, error)
}

// CounterService keeps the school and field tallies in step with MOUs and courses.
type CounterService struct {
	repo    aggregateRepository
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCounterService constructs the service.
func NewCounterService(repo aggregateRepository, metrics *MetricsService, logger *zap.Logger) *CounterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CounterService{repo: repo, metrics: metrics, logger: logger}
}

// EnsureAndIncrement creates the aggregate named name with count 1, or increments it.
// Run it with a transactional context to tie the increment to the owning insert.
func (s *CounterService) EnsureAndIncrement(ctx context.Context, kind models.AggregateKind, name string) (*models.Aggregate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, string(kind)+" name is required")
	}

	agg, err := s.repo.Increment(ctx, kind, name)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to update "+string(kind)+" counter")
	}

	s.metrics.RecordAggregateIncrement(kind)
	s.logger.Debug("aggregate incremented",
		zap.String("kind", string(kind)),
		zap.String("name", agg.Name),
		zap.Int("count", agg.Count),
	)
	return agg, nil
}
