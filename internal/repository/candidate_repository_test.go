package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sispa-api/internal/models"
)

func TestListCandidates(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCandidateRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, name, email, phone_number, gender, department, designation, institution, course_id, created_at FROM candidates`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone_number", "gender", "department", "designation", "institution", "course_id", "created_at"}).
			AddRow("p1", "Ravi", "ravi@example.edu", "+919812345678", "male", "CSE", "Lecturer", "Acme U", nil, now))

	candidates, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Nil(t, candidates[0].CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCandidateEmailExists(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCandidateRepository(db)

	mock.ExpectQuery(`FROM candidates WHERE LOWER\(email\) = LOWER\(\$1\)`).
		WithArgs("ravi@example.edu").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "ravi@example.edu")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCandidate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCandidateRepository(db)

	mock.ExpectExec("INSERT INTO candidates").WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.Candidate{ID: "p1", Name: "Ravi", Email: "ravi@example.edu", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
