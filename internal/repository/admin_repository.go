package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/sispa-api/internal/models"
)

const (
	adminColumns   = "id, name, email, phone_number, password_hash, created_at"
	pendingColumns = "id, name, email, phone_number, password_hash, status, processed_date, created_at"
)

// AdminRepository handles persistence for admins and pending registrations.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository instantiates the repository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByEmail fetches an admin by case-insensitive email.
func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	query := "SELECT " + adminColumns + " FROM admins WHERE LOWER(email) = LOWER($1) LIMIT 1"
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &admin, query, email); err != nil {
		return nil, err
	}
	return &admin, nil
}

// EmailTaken reports whether an admin or a pending registration of any status holds the email.
func (r *AdminRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM admins WHERE LOWER(email) = LOWER($1))
        OR EXISTS (SELECT 1 FROM pending_admins WHERE LOWER(email) = LOWER($1))`
	var taken bool
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &taken, query, email); err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return taken, nil
}

// Create inserts an admin.
func (r *AdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	const query = `INSERT INTO admins (id, name, email, phone_number, password_hash, created_at)
        VALUES (:id, :name, :email, :phone_number, :password_hash, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, admin); err != nil {
		return fmt.Errorf("create admin: %w", mapError(err))
	}
	return nil
}

// CreatePending inserts a pending registration.
func (r *AdminRepository) CreatePending(ctx context.Context, pending *models.PendingAdmin) error {
	const query = `INSERT INTO pending_admins (id, name, email, phone_number, password_hash, status, processed_date, created_at)
        VALUES (:id, :name, :email, :phone_number, :password_hash, :status, :processed_date, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, pending); err != nil {
		return fmt.Errorf("create pending admin: %w", mapError(err))
	}
	return nil
}

// FindPendingForUpdate loads a pending registration and locks the row until the
// surrounding transaction ends.
func (r *AdminRepository) FindPendingForUpdate(ctx context.Context, id string) (*models.PendingAdmin, error) {
	var pending models.PendingAdmin
	query := "SELECT " + pendingColumns + " FROM pending_admins WHERE id = $1 FOR UPDATE"
	if err := sqlx.GetContext(ctx, executor(ctx, r.db), &pending, query, id); err != nil {
		return nil, err
	}
	return &pending, nil
}

// UpdatePendingStatus persists a transition out of pending. Zero affected rows means the
// row had already left the pending state.
func (r *AdminRepository) UpdatePendingStatus(ctx context.Context, pending *models.PendingAdmin) error {
	const query = `UPDATE pending_admins SET status = :status, processed_date = :processed_date
        WHERE id = :id AND status = 'pending'`
	res, err := sqlx.NamedExecContext(ctx, executor(ctx, r.db), query, pending)
	if err != nil {
		return fmt.Errorf("update pending admin: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pending admin rows: %w", err)
	}
	if affected == 0 {
		return models.ErrRegistrationProcessed
	}
	return nil
}
