package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sispa-api/internal/models"
	"github.com/noah-isme/sispa-api/internal/repository"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

type candidateRepository interface {
	List(ctx context.Context) ([]models.Candidate, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, candidate *models.Candidate) error
}

type courseLookup interface {
	ExistsByCourseID(ctx context.Context, courseID string) (bool, error)
}

// CandidateService manages training participants.
type CandidateService struct {
	repo        candidateRepository
	courses     courseLookup
	validator   *validator.Validate
	logger      *zap.Logger
	phoneRegion string
	now         func() time.Time
}

// NewCandidateService constructs the service.
func NewCandidateService(repo candidateRepository, courses courseLookup, validate *validator.Validate, logger *zap.Logger, phoneRegion string) *CandidateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CandidateService{repo: repo, courses: courses, validator: validate, logger: logger, phoneRegion: phoneRegion, now: time.Now}
}

// List returns every participant.
func (s *CandidateService) List(ctx context.Context) ([]models.Candidate, error) {
	candidates, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list participants")
	}
	if candidates == nil {
		candidates = []models.Candidate{}
	}
	return candidates, nil
}

// Create validates and stores a participant. An optional courseId must name an existing course.
func (s *CandidateService) Create(ctx context.Context, req models.CreateCandidateRequest) (*models.Candidate, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Gender = strings.ToLower(strings.TrimSpace(req.Gender))
	req.Department = strings.TrimSpace(req.Department)
	req.Designation = strings.TrimSpace(req.Designation)
	req.Institution = strings.TrimSpace(req.Institution)
	req.CourseID = strings.TrimSpace(req.CourseID)

	if anyBlank(req.Name, req.Email, req.PhoneNumber, req.Gender, req.Department, req.Designation, req.Institution) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "All fields (name, email, phoneNumber, gender, department, designation, institution) are required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid participant payload")
	}
	phone, err := normalizePhone(req.PhoneNumber, s.phoneRegion)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid phone number")
	}

	if req.CourseID != "" {
		exists, err := s.courses.ExistsByCourseID(ctx, req.CourseID)
		if err != nil {
			return nil, appErrors.Dependency(err, "failed to check course")
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrValidation, "course with this ID does not exist")
		}
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to check participant email")
	}
	if exists {
		return nil, errDuplicateCandidate()
	}

	candidate := &models.Candidate{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: phone,
		Gender:      req.Gender,
		Department:  req.Department,
		Designation: req.Designation,
		Institution: req.Institution,
		CreatedAt:   s.now().UTC(),
	}
	if req.CourseID != "" {
		courseID := req.CourseID
		candidate.CourseID = &courseID
	}

	if err := s.repo.Create(ctx, candidate); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errDuplicateCandidate()
		}
		return nil, appErrors.Dependency(err, "failed to save participant")
	}

	s.logger.Info("participant created", zap.String("candidate_id", candidate.ID))
	return candidate, nil
}

func errDuplicateCandidate() error {
	return appErrors.Clone(appErrors.ErrConflict, "Participant with this email already exists")
}
