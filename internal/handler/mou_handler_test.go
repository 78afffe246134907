package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

type stubMOUService struct {
	mous    []models.MOU
	created models.CreateMOURequest
	err     error
}

func (s *stubMOUService) List(context.Context) ([]models.MOU, error) {
	return s.mous, s.err
}

func (s *stubMOUService) Create(_ context.Context, req models.CreateMOURequest) (*models.CreateMOUResult, error) {
	s.created = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.CreateMOUResult{
		MOU:    &models.MOU{ID: "row-1", MOUID: req.ID, NameOfPartnerInstitution: req.NameOfPartnerInstitution, StrategicAreas: req.StrategicAreas},
		School: models.School{ID: "s1", Name: req.NameOfPartnerInstitution, Count: 1},
	}, nil
}

func TestMOUHandlerList(t *testing.T) {
	h := NewMOUHandler(&stubMOUService{mous: []models.MOU{{MOUID: "M1"}, {MOUID: "M2"}}})

	c, w := newTestContext(http.MethodGet, "/api/mous", nil)
	h.List(c)

	body := decodeBody(t, w)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])
	data := body["data"].([]interface{})
	assert.Equal(t, "M1", data[0].(map[string]interface{})["ID"])
}

func TestMOUHandlerCreate(t *testing.T) {
	svc := &stubMOUService{}
	h := NewMOUHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/mous", map[string]string{
		"ID": "M1", "nameOfPartnerInstitution": "Riverside High", "strategicAreas": "STEM",
	})
	h.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "M1", svc.created.ID)
	body := decodeBody(t, w)
	assert.Equal(t, "MOU added successfully", body["message"])
	assert.Equal(t, "M1", body["data"].(map[string]interface{})["ID"])
	school := body["meta"].(map[string]interface{})["school"].(map[string]interface{})
	assert.Equal(t, float64(1), school["count"])
}

func TestMOUHandlerCreateConflict(t *testing.T) {
	h := NewMOUHandler(&stubMOUService{err: appErrors.Clone(appErrors.ErrConflict, "MOU with this ID already exists")})

	c, w := newTestContext(http.MethodPost, "/api/mous", map[string]string{"ID": "M1"})
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "MOU with this ID already exists", decodeBody(t, w)["error"])
}
