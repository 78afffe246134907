package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sispa-api/internal/models"
)

func TestFindAdminByEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone_number", "password_hash", "created_at"}).
		AddRow("a1", "Asha", "asha@example.edu", "+919876543210", "hash", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, phone_number, password_hash, created_at FROM admins WHERE LOWER(email) = LOWER($1) LIMIT 1")).
		WithArgs("Asha@Example.edu").
		WillReturnRows(rows)

	admin, err := repo.FindByEmail(context.Background(), "Asha@Example.edu")
	require.NoError(t, err)
	assert.Equal(t, "a1", admin.ID)
	assert.Equal(t, "hash", admin.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailTakenChecksBothTables(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectQuery(`SELECT EXISTS \(SELECT 1 FROM admins WHERE LOWER\(email\) = LOWER\(\$1\)\)\s+OR EXISTS \(SELECT 1 FROM pending_admins`).
		WithArgs("asha@example.edu").
		WillReturnRows(sqlmock.NewRows([]string{"taken"}).AddRow(true))

	taken, err := repo.EmailTaken(context.Background(), "asha@example.edu")
	require.NoError(t, err)
	assert.True(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePendingDuplicate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectExec("INSERT INTO pending_admins").WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreatePending(context.Background(), &models.PendingAdmin{ID: "p1", Status: models.RegistrationPending, CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPendingForUpdateLocksRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone_number", "password_hash", "status", "processed_date", "created_at"}).
		AddRow("p1", "Asha", "asha@example.edu", "+919876543210", "hash", "pending", nil, now)
	mock.ExpectQuery(`FROM pending_admins WHERE id = \$1 FOR UPDATE`).WithArgs("p1").WillReturnRows(rows)

	pending, err := repo.FindPendingForUpdate(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, pending.Status)
	assert.Nil(t, pending.ProcessedDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePendingStatusAlreadyProcessed(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectExec("UPDATE pending_admins SET status").WillReturnResult(sqlmock.NewResult(0, 0))

	processed := time.Now()
	err := repo.UpdatePendingStatus(context.Background(), &models.PendingAdmin{ID: "p1", Status: models.RegistrationApproved, ProcessedDate: &processed})
	assert.ErrorIs(t, err, models.ErrRegistrationProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAdmin(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAdminRepository(db)

	mock.ExpectExec("INSERT INTO admins").WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.Admin{ID: "a1", Name: "Asha", Email: "asha@example.edu", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
