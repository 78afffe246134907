package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sispa-api/internal/models"
	"github.com/noah-isme/sispa-api/internal/repository"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
	"github.com/noah-isme/sispa-api/pkg/mailer"
)

const (
	pendingAdminTemplate = "pending_admin"
	maxPasswordBytes     = 72
)

type registrationRepository interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreatePending(ctx context.Context, pending *models.PendingAdmin) error
	FindPendingForUpdate(ctx context.Context, id string) (*models.PendingAdmin, error)
	UpdatePendingStatus(ctx context.Context, pending *models.PendingAdmin) error
	Create(ctx context.Context, admin *models.Admin) error
}

type txRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegistrationConfig configures admin registration.
type RegistrationConfig struct {
	AppName           string
	PublicBaseURL     string
	APIPrefix         string
	ApproverAddress   string
	PhoneRegion       string
	BcryptCost        int
	MinPasswordLength int
}

// RegistrationService drives the pending -> approved | rejected admin lifecycle.
type RegistrationService struct {
	repo      registrationRepository
	tx        txRunner
	mailer    mailer.Mailer
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	config    RegistrationConfig
	now       func() time.Time
}

// NewRegistrationService constructs the service.
func NewRegistrationService(repo registrationRepository, tx txRunner, m mailer.Mailer, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger, config RegistrationConfig) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.MinPasswordLength <= 0 {
		config.MinPasswordLength = 8
	}
	if config.AppName == "" {
		config.AppName = "SISPA"
	}
	return &RegistrationService{
		repo:      repo,
		tx:        tx,
		mailer:    m,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

type pendingAdminMail struct {
	AppName     string
	Name        string
	Email       string
	PhoneNumber string
	ConfirmURL  string
	DenyURL     string
}

// Submit stores a pending registration and mails the confirm/deny links to the approver.
// The row is rolled back when the mail cannot be sent.
func (s *RegistrationService) Submit(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)

	if anyBlank(req.Name, req.Email, req.PhoneNumber, req.Password) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name, email, phoneNumber and password are required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid email address")
	}
	phone, err := normalizePhone(req.PhoneNumber, s.config.PhoneRegion)
	if err != nil {
		return nil, appErrors.Validation(err, "invalid phone number")
	}
	if len(req.Password) < s.config.MinPasswordLength || len(req.Password) > maxPasswordBytes {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("password must be between %d and %d characters", s.config.MinPasswordLength, maxPasswordBytes))
	}

	taken, err := s.repo.EmailTaken(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to check email")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an admin or pending registration already exists for this email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to hash password")
	}

	now := s.now().UTC()
	pending := &models.PendingAdmin{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Status:       models.RegistrationPending,
		CreatedAt:    now,
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreatePending(ctx, pending); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return appErrors.Clone(appErrors.ErrConflict, "an admin or pending registration already exists for this email")
			}
			return appErrors.Dependency(err, "failed to store registration")
		}
		if err := s.mailer.Send(ctx, s.notification(pending)); err != nil {
			s.metrics.RecordMailFailure()
			return appErrors.Dependency(err, "failed to send confirmation email")
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("registration rejected", zap.String("email", pending.Email), zap.Error(err))
		return nil, err
	}

	s.metrics.RecordRegistration("submitted")
	s.logger.Info("registration submitted", zap.String("pending_admin_id", pending.ID))
	return &models.RegisterResponse{PendingAdminID: pending.ID}, nil
}

// Confirm approves a pending registration and creates the admin.
func (s *RegistrationService) Confirm(ctx context.Context, id string) (*models.VerificationResult, error) {
	return s.process(ctx, id, models.RegistrationApproved)
}

// Deny rejects a pending registration.
func (s *RegistrationService) Deny(ctx context.Context, id string) (*models.VerificationResult, error) {
	return s.process(ctx, id, models.RegistrationRejected)
}

func (s *RegistrationService) process(ctx context.Context, id string, to models.RegistrationStatus) (*models.VerificationResult, error) {
	if err := requireID(id, "pending admin"); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)

	var result *models.VerificationResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		pending, err := s.repo.FindPendingForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrNotFound, "pending admin not found")
			}
			return appErrors.Dependency(err, "failed to load registration")
		}

		now := s.now()
		if to == models.RegistrationApproved {
			err = pending.Approve(now)
		} else {
			err = pending.Reject(now)
		}
		if err != nil {
			return appErrors.Validation(err, "registration already processed")
		}

		var admin *models.Admin
		if to == models.RegistrationApproved {
			admin = pending.ToAdmin(uuid.NewString(), now)
			if err := s.repo.Create(ctx, admin); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return appErrors.Clone(appErrors.ErrConflict, "an admin with this email already exists")
				}
				return appErrors.Dependency(err, "failed to create admin")
			}
		}

		if err := s.repo.UpdatePendingStatus(ctx, pending); err != nil {
			if errors.Is(err, models.ErrRegistrationProcessed) {
				return appErrors.Validation(err, "registration already processed")
			}
			return appErrors.Dependency(err, "failed to update registration")
		}

		result = &models.VerificationResult{
			PendingAdminID: pending.ID,
			Status:         pending.Status,
			ProcessedDate:  *pending.ProcessedDate,
			Admin:          admin,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordRegistration(string(to))
	s.logger.Info("registration processed",
		zap.String("pending_admin_id", result.PendingAdminID),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

func (s *RegistrationService) notification(p *models.PendingAdmin) *mailer.Message {
	verify := strings.TrimRight(s.config.PublicBaseURL, "/") + s.config.APIPrefix + "/admin/verify/"
	return &mailer.Message{
		To:           []mail.Address{{Address: s.config.ApproverAddress}},
		Subject:      "New admin registration: " + p.Name,
		TemplateName: pendingAdminTemplate,
		TemplateData: pendingAdminMail{
			AppName:     s.config.AppName,
			Name:        p.Name,
			Email:       p.Email,
			PhoneNumber: p.PhoneNumber,
			ConfirmURL:  verify + "yes/" + p.ID,
			DenyURL:     verify + "no/" + p.ID,
		},
	}
}
