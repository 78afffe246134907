package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

type fieldCourseLister interface {
	ListByField(ctx context.Context, field string) ([]models.Course, error)
}

// FieldService serves the field aggregates and their courses.
type FieldService struct {
	aggregates aggregateRepository
	courses    fieldCourseLister
	cache      *CacheService
	logger     *zap.Logger
	prefix     string
}

// NewFieldService constructs the service.
func NewFieldService(aggregates aggregateRepository, courses fieldCourseLister, cache *CacheService, logger *zap.Logger, prefix string) *FieldService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FieldService{aggregates: aggregates, courses: courses, cache: cache, logger: logger, prefix: prefix}
}

// List returns every field with a link to its detail route.
func (s *FieldService) List(ctx context.Context) ([]models.Field, error) {
	var cached []models.Field
	if s.cache.Get(ctx, CacheKeyFields, &cached) {
		return cached, nil
	}

	items, err := s.aggregates.List(ctx, models.AggregateField, false)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list fields")
	}

	fields := make([]models.Field, 0, len(items))
	for _, item := range items {
		fields = append(fields, fieldView(item, s.prefix))
	}
	s.cache.Set(ctx, CacheKeyFields, fields, 0)
	return fields, nil
}

// Get returns a field and the courses that reference it by name.
func (s *FieldService) Get(ctx context.Context, id string) (*models.FieldDetail, error) {
	if err := requireID(id, "field"); err != nil {
		return nil, err
	}

	agg, err := s.aggregates.FindByID(ctx, models.AggregateField, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "Field not found")
		}
		return nil, appErrors.Dependency(err, "failed to load field")
	}

	courses, err := s.courses.ListByField(ctx, agg.Name)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list field courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return &models.FieldDetail{Field: fieldView(*agg, s.prefix), Courses: courses}, nil
}

func fieldView(agg models.Aggregate, prefix string) models.Field {
	return models.Field{
		ID:             agg.ID,
		NameOfTheField: agg.Name,
		Count:          agg.Count,
		Link:           prefix + "/fields/" + agg.ID,
	}
}
