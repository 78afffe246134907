package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sispa-api/internal/models"
)

const courseColumns = "id, course_id, name, eligible_departments, start_date, end_date, completed, field, created_at"

// CourseRepository handles persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns every course ordered by start date.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses ORDER BY start_date, course_id"
	var courses []models.Course
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByCompletion filters courses by their yes/no completion flag.
func (r *CourseRepository) ListByCompletion(ctx context.Context, completed models.CourseCompletion) ([]models.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses WHERE completed = $1 ORDER BY start_date, course_id"
	var courses []models.Course
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &courses, query, string(completed)); err != nil {
		return nil, fmt.Errorf("list courses by completion: %w", err)
	}
	return courses, nil
}

// ListByField returns the courses referencing the field name.
func (r *CourseRepository) ListByField(ctx context.Context, field string) ([]models.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses WHERE field = $1 ORDER BY start_date, course_id"
	var courses []models.Course
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &courses, query, field); err != nil {
		return nil, fmt.Errorf("list courses by field: %w", err)
	}
	return courses, nil
}

// ExistsByCourseID reports whether the business key is already used.
func (r *CourseRepository) ExistsByCourseID(ctx context.Context, courseID string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, "SELECT EXISTS (SELECT 1 FROM courses WHERE course_id = $1)", courseID); err != nil {
		return false, fmt.Errorf("check course id: %w", err)
	}
	return exists, nil
}

// Create inserts a course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (id, course_id, name, eligible_departments, start_date, end_date, completed, field, created_at)
        VALUES (:id, :course_id, :name, :eligible_departments, :start_date, :end_date, :completed, :field, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, course); err != nil {
		return fmt.Errorf("create course: %w", mapError(err))
	}
	return nil
}
