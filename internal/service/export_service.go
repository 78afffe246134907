package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
	"github.com/noah-isme/sispa-api/pkg/export"
)

const exportDateLayout = "2006-01-02"

type mouLister interface {
	List(ctx context.Context) ([]models.MOU, error)
}

type courseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

type candidateLister interface {
	List(ctx context.Context) ([]models.Candidate, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders MOUs, courses and participants as CSV or PDF.
type ExportService struct {
	mous       mouLister
	courses    courseLister
	candidates candidateLister
	logger     *zap.Logger
	now        func() time.Time
}

// NewExportService constructs the service.
func NewExportService(mous mouLister, courses courseLister, candidates candidateLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{mous: mous, courses: courses, candidates: candidates, logger: logger, now: time.Now}
}

// MOUs exports every MOU.
func (s *ExportService) MOUs(ctx context.Context, rawFormat string) (*ExportFile, error) {
	format, err := parseExportFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	mous, err := s.mous.List(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list MOUs")
	}

	data := export.Dataset{Title: "Memoranda of Understanding", Headers: []string{"ID", "Partner Institution", "Strategic Areas", "Created"}}
	for _, m := range mous {
		data.Append(m.MOUID, m.NameOfPartnerInstitution, m.StrategicAreas, m.CreatedAt.Format(exportDateLayout))
	}
	return s.render(format, "mous", data)
}

// Courses exports every course.
func (s *ExportService) Courses(ctx context.Context, rawFormat string) (*ExportFile, error) {
	format, err := parseExportFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list courses")
	}

	data := export.Dataset{Title: "Courses", Headers: []string{"ID", "Name", "Field", "Eligible Departments", "Start", "End", "Completed"}}
	for _, c := range courses {
		data.Append(c.CourseID, c.Name, c.Field, strings.Join(c.EligibleDepartments, "; "),
			c.StartDate.Format(exportDateLayout), c.EndDate.Format(exportDateLayout), string(c.Completed))
	}
	return s.render(format, "courses", data)
}

// Participants exports every participant.
func (s *ExportService) Participants(ctx context.Context, rawFormat string) (*ExportFile, error) {
	format, err := parseExportFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidates.List(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list participants")
	}

	data := export.Dataset{Title: "Participants", Headers: []string{"Name", "Email", "Phone", "Gender", "Department", "Designation", "Institution", "Course"}}
	for _, c := range candidates {
		course := ""
		if c.CourseID != nil {
			course = *c.CourseID
		}
		data.Append(c.Name, c.Email, c.PhoneNumber, c.Gender, c.Department, c.Designation, c.Institution, course)
	}
	return s.render(format, "participants", data)
}

func (s *ExportService) render(format export.Format, base string, data export.Dataset) (*ExportFile, error) {
	body, err := export.Render(format, data)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render export")
	}
	name := base + "-" + s.now().UTC().Format("20060102")
	s.logger.Debug("export rendered", zap.String("dataset", base), zap.String("format", string(format)), zap.Int("rows", len(data.Rows)))
	return &ExportFile{Filename: format.Filename(name), ContentType: format.ContentType(), Body: body}, nil
}

func parseExportFormat(raw string) (export.Format, error) {
	format, err := export.ParseFormat(raw)
	if err != nil {
		return "", appErrors.Validation(err, "format must be csv or pdf")
	}
	return format, nil
}
