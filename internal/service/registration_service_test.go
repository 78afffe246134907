package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/sispa-api/internal/models"
)

type registrationFixture struct {
	svc    *RegistrationService
	repo   *fakeAdminRepo
	tx     *fakeTx
	mailer *fakeMailer
}

func newRegistrationFixture() *registrationFixture {
	repo := newFakeAdminRepo()
	tx := &fakeTx{}
	m := &fakeMailer{}
	svc := NewRegistrationService(repo, tx, m, nil, nil, nil, RegistrationConfig{
		AppName:         "SISPA",
		PublicBaseURL:   "https://sispa.example.edu/",
		APIPrefix:       "/api",
		ApproverAddress: "approver@example.edu",
		PhoneRegion:     "IN",
		BcryptCost:      bcrypt.MinCost,
	})
	return &registrationFixture{svc: svc, repo: repo, tx: tx, mailer: m}
}

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Name:        " Asha Rao ",
		Email:       "Asha@Example.edu",
		PhoneNumber: "98765 43210",
		Password:    "correct-horse",
	}
}

func TestSubmitStoresPendingAndMailsLinks(t *testing.T) {
	f := newRegistrationFixture()

	resp, err := f.svc.Submit(context.Background(), validRegistration())
	require.NoError(t, err)

	pending := f.repo.pending[resp.PendingAdminID]
	require.NotNil(t, pending)
	assert.Equal(t, models.RegistrationPending, pending.Status)
	assert.Equal(t, "asha@example.edu", pending.Email)
	assert.Equal(t, "Asha Rao", pending.Name)
	assert.Equal(t, "+919876543210", pending.PhoneNumber)
	assert.NotEqual(t, "correct-horse", pending.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(pending.PasswordHash), []byte("correct-horse")))

	require.Len(t, f.mailer.sent, 1)
	msg := f.mailer.sent[0]
	assert.Equal(t, "approver@example.edu", msg.To[0].Address)
	assert.Contains(t, msg.TextContent, "https://sispa.example.edu/api/admin/verify/yes/"+resp.PendingAdminID)
	assert.Contains(t, msg.TextContent, "https://sispa.example.edu/api/admin/verify/no/"+resp.PendingAdminID)
	assert.Equal(t, 1, f.tx.commits)
}

func TestSubmitRejectsExistingEmail(t *testing.T) {
	f := newRegistrationFixture()
	f.repo.admins["a1"] = &models.Admin{ID: "a1", Email: "asha@example.edu"}

	_, err := f.svc.Submit(context.Background(), validRegistration())
	assert.Equal(t, http.StatusConflict, statusOf(err))
	assert.Empty(t, f.mailer.sent)
}

func TestSubmitRejectsPendingEmailCaseInsensitive(t *testing.T) {
	f := newRegistrationFixture()
	_, err := f.svc.Submit(context.Background(), validRegistration())
	require.NoError(t, err)

	again := validRegistration()
	again.Email = "ASHA@EXAMPLE.EDU"
	_, err = f.svc.Submit(context.Background(), again)
	assert.Equal(t, http.StatusConflict, statusOf(err))
	assert.Len(t, f.mailer.sent, 1)
}

func TestSubmitValidation(t *testing.T) {
	cases := map[string]func(r *models.RegisterRequest){
		"missing name":   func(r *models.RegisterRequest) { r.Name = "   " },
		"bad email":      func(r *models.RegisterRequest) { r.Email = "not-an-email" },
		"bad phone":      func(r *models.RegisterRequest) { r.PhoneNumber = "12" },
		"short password": func(r *models.RegisterRequest) { r.Password = "short" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newRegistrationFixture()
			req := validRegistration()
			mutate(&req)
			_, err := f.svc.Submit(context.Background(), req)
			assert.Equal(t, http.StatusBadRequest, statusOf(err))
			assert.Empty(t, f.repo.pending)
		})
	}
}

func TestSubmitMailFailureRollsBack(t *testing.T) {
	f := newRegistrationFixture()
	f.mailer.err = errors.New("sendgrid: status 503")
	f.tx.onRollback = f.repo.dropPending

	_, err := f.svc.Submit(context.Background(), validRegistration())
	assert.Equal(t, http.StatusInternalServerError, statusOf(err))
	assert.Equal(t, 1, f.tx.rollbacks)
	assert.Empty(t, f.repo.pending)
}

func TestConfirmCreatesAdminOnce(t *testing.T) {
	f := newRegistrationFixture()
	resp, err := f.svc.Submit(context.Background(), validRegistration())
	require.NoError(t, err)

	result, err := f.svc.Confirm(context.Background(), resp.PendingAdminID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, result.Status)
	require.NotNil(t, result.Admin)
	assert.Equal(t, "asha@example.edu", result.Admin.Email)
	assert.Len(t, f.repo.admins, 1)

	stored := f.repo.pending[resp.PendingAdminID]
	assert.Equal(t, models.RegistrationApproved, stored.Status)
	require.NotNil(t, stored.ProcessedDate)

	_, err = f.svc.Confirm(context.Background(), resp.PendingAdminID)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	_, err = f.svc.Deny(context.Background(), resp.PendingAdminID)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	assert.Len(t, f.repo.admins, 1)
	assert.Equal(t, models.RegistrationApproved, f.repo.pending[resp.PendingAdminID].Status)
}

func TestDenyCreatesNoAdmin(t *testing.T) {
	f := newRegistrationFixture()
	resp, err := f.svc.Submit(context.Background(), validRegistration())
	require.NoError(t, err)

	result, err := f.svc.Deny(context.Background(), resp.PendingAdminID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationRejected, result.Status)
	assert.Nil(t, result.Admin)
	assert.Empty(t, f.repo.admins)

	_, err = f.svc.Confirm(context.Background(), resp.PendingAdminID)
	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	assert.Empty(t, f.repo.admins)
}

func TestConfirmUnknownAndMalformedIDs(t *testing.T) {
	f := newRegistrationFixture()

	_, err := f.svc.Confirm(context.Background(), "not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, statusOf(err))

	_, err = f.svc.Confirm(context.Background(), uuid.NewString())
	assert.Equal(t, http.StatusNotFound, statusOf(err))
}
