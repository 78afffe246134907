package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sispa-api/internal/models"
)

const mouColumns = "id, mou_id, name_of_partner_institution, strategic_areas, created_at"

// MOURepository handles persistence for MOUs.
type MOURepository struct {
	db *sqlx.DB
}

// NewMOURepository constructs the repository.
func NewMOURepository(db *sqlx.DB) *MOURepository {
	return &MOURepository{db: db}
}

// List returns every MOU in creation order.
func (r *MOURepository) List(ctx context.Context) ([]models.MOU, error) {
	query := "SELECT " + mouColumns + " FROM mous ORDER BY created_at, mou_id"
	var mous []models.MOU
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &mous, query); err != nil {
		return nil, fmt.Errorf("list mous: %w", err)
	}
	return mous, nil
}

// ListByPartner returns the MOUs signed with the named institution.
func (r *MOURepository) ListByPartner(ctx context.Context, partner string) ([]models.MOU, error) {
	query := "SELECT " + mouColumns + " FROM mous WHERE name_of_partner_institution = $1 ORDER BY created_at, mou_id"
	var mous []models.MOU
	if err := sqlx.SelectContext(ctx, executor(ctx, r.db), &mous, query, partner); err != nil {
		return nil, fmt.Errorf("list mous by partner: %w", err)
	}
	return mous, nil
}

// ExistsByMOUID reports whether the business key is already used.
func (r *MOURepository) ExistsByMOUID(ctx context.Context, mouID string) (bool, error) {
	var exists bool
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &exists, "SELECT EXISTS (SELECT 1 FROM mous WHERE mou_id = $1)", mouID); err != nil {
		return false, fmt.Errorf("check mou id: %w", err)
	}
	return exists, nil
}

// Create inserts an MOU.
func (r *MOURepository) Create(ctx context.Context, mou *models.MOU) error {
	const query = `INSERT INTO mous (id, mou_id, name_of_partner_institution, strategic_areas, created_at)
        VALUES (:id, :mou_id, :name_of_partner_institution, :strategic_areas, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, mou); err != nil {
		return fmt.Errorf("create mou: %w", mapError(err))
	}
	return nil
}
