package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sispa-api/internal/models"
	"github.com/noah-isme/sispa-api/internal/repository"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

type mouRepository interface {
	List(ctx context.Context) ([]models.MOU, error)
	ListByPartner(ctx context.Context, partner string) ([]models.MOU, error)
	ExistsByMOUID(ctx context.Context, mouID string) (bool, error)
	Create(ctx context.Context, mou *models.MOU) error
}

type aggregateCounter interface {
	EnsureAndIncrement(ctx context.Context, kind models.AggregateKind, name string) (*models.Aggregate, error)
}

// MOUService lists and creates MOUs, keeping the school tally in step.
type MOUService struct {
	repo    mouRepository
	counter aggregateCounter
	tx      txRunner
	cache   *CacheService
	logger  *zap.Logger
	prefix  string
	now     func() time.Time
}

// NewMOUService constructs the service. prefix is the API mount point used in school links.
func NewMOUService(repo mouRepository, counter aggregateCounter, tx txRunner, cache *CacheService, logger *zap.Logger, prefix string) *MOUService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MOUService{repo: repo, counter: counter, tx: tx, cache: cache, logger: logger, prefix: prefix, now: time.Now}
}

// List returns every MOU.
func (s *MOUService) List(ctx context.Context) ([]models.MOU, error) {
	mous, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list MOUs")
	}
	if mous == nil {
		mous = []models.MOU{}
	}
	return mous, nil
}

// Create validates the request, bumps the partner school's count and stores the MOU in
// one transaction.
func (s *MOUService) Create(ctx context.Context, req models.CreateMOURequest) (*models.CreateMOUResult, error) {
	mou := &models.MOU{
		ID:                       uuid.NewString(),
		MOUID:                    strings.TrimSpace(req.ID),
		NameOfPartnerInstitution: strings.TrimSpace(req.NameOfPartnerInstitution),
		StrategicAreas:           strings.TrimSpace(req.StrategicAreas),
		CreatedAt:                s.now().UTC(),
	}
	if anyBlank(mou.MOUID, mou.NameOfPartnerInstitution, mou.StrategicAreas) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "All fields (ID, nameOfPartnerInstitution, strategicAreas) are required")
	}

	var school *models.Aggregate
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByMOUID(ctx, mou.MOUID)
		if err != nil {
			return appErrors.Dependency(err, "failed to check MOU id")
		}
		if exists {
			return errDuplicateMOU()
		}

		school, err = s.counter.EnsureAndIncrement(ctx, models.AggregateSchool, mou.NameOfPartnerInstitution)
		if err != nil {
			return err
		}

		if err := s.repo.Create(ctx, mou); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errDuplicateMOU()
			}
			return appErrors.Dependency(err, "failed to save MOU")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, CacheKeyActiveSchools)
	s.logger.Info("mou created", zap.String("mou_id", mou.MOUID), zap.String("school", school.Name), zap.Int("school_count", school.Count))

	return &models.CreateMOUResult{MOU: mou, School: schoolView(*school, s.prefix)}, nil
}

func errDuplicateMOU() error {
	return appErrors.Clone(appErrors.ErrConflict, "MOU with this ID already exists")
}
