package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/sispa-api/internal/models"
	"github.com/noah-isme/sispa-api/internal/repository"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

var courseDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	ListByCompletion(ctx context.Context, completed models.CourseCompletion) ([]models.Course, error)
	ExistsByCourseID(ctx context.Context, courseID string) (bool, error)
	Create(ctx context.Context, course *models.Course) error
}

// CourseService lists and creates courses, keeping the field tally in step.
type CourseService struct {
	repo    courseRepository
	counter aggregateCounter
	tx      txRunner
	cache   *CacheService
	logger  *zap.Logger
	prefix  string
	now     func() time.Time
}

// NewCourseService constructs the service.
func NewCourseService(repo courseRepository, counter aggregateCounter, tx txRunner, cache *CacheService, logger *zap.Logger, prefix string) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, counter: counter, tx: tx, cache: cache, logger: logger, prefix: prefix, now: time.Now}
}

// Running returns courses that are not completed.
func (s *CourseService) Running(ctx context.Context) ([]models.Course, error) {
	return s.byCompletion(ctx, models.CourseRunning)
}

// Completed returns completed courses.
func (s *CourseService) Completed(ctx context.Context) ([]models.Course, error) {
	return s.byCompletion(ctx, models.CourseCompleted)
}

func (s *CourseService) byCompletion(ctx context.Context, completed models.CourseCompletion) ([]models.Course, error) {
	courses, err := s.repo.ListByCompletion(ctx, completed)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list courses")
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// Create validates the request, bumps the field's count and stores the course in one
// transaction. Every validation runs before the store is touched.
func (s *CourseService) Create(ctx context.Context, req models.CreateCourseRequest) (*models.CreateCourseResult, error) {
	course, err := s.buildCourse(req)
	if err != nil {
		return nil, err
	}

	var field *models.Aggregate
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.repo.ExistsByCourseID(ctx, course.CourseID)
		if err != nil {
			return appErrors.Dependency(err, "failed to check course id")
		}
		if exists {
			return errDuplicateCourse()
		}

		field, err = s.counter.EnsureAndIncrement(ctx, models.AggregateField, course.Field)
		if err != nil {
			return err
		}

		if err := s.repo.Create(ctx, course); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return errDuplicateCourse()
			}
			return appErrors.Dependency(err, "failed to save course")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, CacheKeyFields)
	s.logger.Info("course created", zap.String("course_id", course.CourseID), zap.String("field", field.Name), zap.Int("field_count", field.Count))

	return &models.CreateCourseResult{Course: course, Field: fieldView(*field, s.prefix)}, nil
}

func (s *CourseService) buildCourse(req models.CreateCourseRequest) (*models.Course, error) {
	id := strings.TrimSpace(req.ID)
	name := strings.TrimSpace(req.Name)
	field := strings.TrimSpace(req.Field)
	if anyBlank(id, name, req.StartDate, req.EndDate, field) || req.EligibleDepartments == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "All fields (ID, Name, eligibleDepartments, startDate, endDate, field) are required")
	}

	departments, ok := departmentList(req.EligibleDepartments)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "eligibleDepartments must be a non-empty array")
	}

	start, okStart := parseCourseDate(req.StartDate)
	end, okEnd := parseCourseDate(req.EndDate)
	if !okStart || !okEnd {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Invalid date format. Please use valid date format")
	}
	if !start.Before(end) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "End date must be after start date")
	}

	var completed models.CourseCompletion
	switch strings.ToLower(strings.TrimSpace(req.Completed)) {
	case "", "no":
		completed = models.CourseRunning
	case "yes":
		completed = models.CourseCompleted
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, `completed must be either "yes" or "no"`)
	}

	return &models.Course{
		ID:                  uuid.NewString(),
		CourseID:            id,
		Name:                name,
		EligibleDepartments: departments,
		StartDate:           start,
		EndDate:             end,
		Completed:           completed,
		Field:               field,
		CreatedAt:           s.now().UTC(),
	}, nil
}

// departmentList accepts a JSON array of non-blank strings and trims each entry.
func departmentList(raw interface{}) (pq.StringArray, bool) {
	items, ok := raw.([]interface{})
	if !ok || len(items) == 0 {
		return nil, false
	}
	out := make(pq.StringArray, 0, len(items))
	for _, item := range items {
		dept, ok := item.(string)
		if !ok || strings.TrimSpace(dept) == "" {
			return nil, false
		}
		out = append(out, strings.TrimSpace(dept))
	}
	return out, true
}

func parseCourseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range courseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func errDuplicateCourse() error {
	return appErrors.Clone(appErrors.ErrConflict, "Course with this ID already exists")
}
