package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sispa-api/internal/models"
)

const candidateColumns = "id, name, email, phone_number, gender, department, designation, institution, course_id, created_at"

// CandidateRepository handles persistence for training participants.
type CandidateRepository struct {
	db *sqlx.DB
}

// NewCandidateRepository constructs the repository.
func NewCandidateRepository(db *sqlx.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

// List returns all participants, newest first.
func (r *CandidateRepository) List(ctx context.Context) ([]models.Candidate, error) {
	query := "SELECT " + candidateColumns + " FROM candidates ORDER BY created_at DESC, name"
	var candidates []models.Candidate
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &candidates, query); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	return candidates, nil
}

// ExistsByEmail reports whether a participant already uses the email.
func (r *CandidateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, "SELECT EXISTS (SELECT 1 FROM candidates WHERE LOWER(email) = LOWER($1))", email); err != nil {
		return false, fmt.Errorf("check candidate email: %w", err)
	}
	return exists, nil
}

// Create inserts a participant.
func (r *CandidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	const query = `INSERT INTO candidates (id, name, email, phone_number, gender, department, designation, institution, course_id, created_at)
        VALUES (:id, :name, :email, :phone_number, :gender, :department, :designation, :institution, :course_id, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, candidate); err != nil {
		return fmt.Errorf("create candidate: %w", mapError(err))
	}
	return nil
}
