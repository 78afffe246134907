package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

type partnerMOULister interface {
	ListByPartner(ctx context.Context, partner string) ([]models.MOU, error)
}

// SchoolService serves the school aggregates and their MOUs.
type SchoolService struct {
	aggregates aggregateRepository
	mous       partnerMOULister
	cache      *CacheService
	logger     *zap.Logger
	prefix     string
}

// NewSchoolService constructs the service.
func NewSchoolService(aggregates aggregateRepository, mous partnerMOULister, cache *CacheService, logger *zap.Logger, prefix string) *SchoolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchoolService{aggregates: aggregates, mous: mous, cache: cache, logger: logger, prefix: prefix}
}

// ListActive returns schools with at least one MOU, each with a link to its detail route.
func (s *SchoolService) ListActive(ctx context.Context) ([]models.School, error) {
	var cached []models.School
	if s.cache.Get(ctx, CacheKeyActiveSchools, &cached) {
		return cached, nil
	}

	items, err := s.aggregates.List(ctx, models.AggregateSchool, true)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list schools")
	}

	schools := make([]models.School, 0, len(items))
	for _, item := range items {
		schools = append(schools, schoolView(item, s.prefix))
	}
	s.cache.Set(ctx, CacheKeyActiveSchools, schools, 0)
	return schools, nil
}

// Get returns a school and the MOUs whose partner institution matches its name.
func (s *SchoolService) Get(ctx context.Context, id string) (*models.SchoolDetail, error) {
	if err := requireID(id, "school"); err != nil {
		return nil, err
	}

	agg, err := s.aggregates.FindByID(ctx, models.AggregateSchool, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "School not found")
		}
		return nil, appErrors.Dependency(err, "failed to load school")
	}

	mous, err := s.mous.ListByPartner(ctx, agg.Name)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list school MOUs")
	}
	if mous == nil {
		mous = []models.MOU{}
	}
	return &models.SchoolDetail{School: schoolView(*agg, s.prefix), MOUs: mous}, nil
}

func schoolView(agg models.Aggregate, prefix string) models.School {
	return models.School{
		ID:    agg.ID,
		Name:  agg.Name,
		Count: agg.Count,
		Link:  prefix + "/schools/" + agg.ID,
	}
}
