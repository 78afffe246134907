package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

type stubParticipantService struct {
	list    []models.Candidate
	created models.CreateCandidateRequest
	err     error
}

func (s *stubParticipantService) List(context.Context) ([]models.Candidate, error) {
	return s.list, s.err
}

func (s *stubParticipantService) Create(_ context.Context, req models.CreateCandidateRequest) (*models.Candidate, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Candidate{ID: "c1", Name: req.Name, Email: req.Email}, nil
}

func TestParticipantHandlerCreate(t *testing.T) {
	svc := &stubParticipantService{}
	h := NewParticipantHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/participants", map[string]string{
		"name": "Grace", "email": "grace@example.edu", "phoneNumber": "+14155550101", "gender": "female",
		"department": "CS", "designation": "Lecturer", "institution": "Riverside High",
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "female", svc.created.Gender)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "c1", data["_id"])
}

func TestParticipantHandlerDuplicate(t *testing.T) {
	h := NewParticipantHandler(&stubParticipantService{
		err: appErrors.Clone(appErrors.ErrConflict, "Participant with this email already exists"),
	})

	c, w := newTestContext(http.MethodPost, "/api/participants", map[string]string{"email": "grace@example.edu"})
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestParticipantHandlerList(t *testing.T) {
	h := NewParticipantHandler(&stubParticipantService{list: []models.Candidate{{ID: "c1"}}})

	c, w := newTestContext(http.MethodGet, "/api/participants", nil)
	h.List(c)

	assert.Equal(t, float64(1), decodeBody(t, w)["count"])
}
