package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
	"github.com/noah-isme/sispa-api/pkg/response"
)

type participantService interface {
	List(ctx context.Context) ([]models.Candidate, error)
	Create(ctx context.Context, req models.CreateCandidateRequest) (*models.Candidate, error)
}

// ParticipantHandler handles training participant endpoints.
type ParticipantHandler struct {
	service participantService
}

// NewParticipantHandler constructs the handler.
func NewParticipantHandler(svc participantService) *ParticipantHandler {
	return &ParticipantHandler{service: svc}
}

// List godoc
// @Summary List participants
// @Tags Participants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /participants [get]
func (h *ParticipantHandler) List(c *gin.Context) {
	candidates, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, candidates, len(candidates))
}

// Create godoc
// @Summary Add a participant
// @Tags Participants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateCandidateRequest true "Participant payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /participants [post]
func (h *ParticipantHandler) Create(c *gin.Context) {
	var req models.CreateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid participant payload"))
		return
	}

	candidate, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Participant added successfully", candidate)
}
