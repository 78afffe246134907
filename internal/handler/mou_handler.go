package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
	"github.com/noah-isme/sispa-api/pkg/response"
)

type mouService interface {
	List(ctx context.Context) ([]models.MOU, error)
	Create(ctx context.Context, req models.CreateMOURequest) (*models.CreateMOUResult, error)
}

// MOUHandler handles MOU endpoints.
type MOUHandler struct {
	service mouService
}

// NewMOUHandler constructs the handler.
func NewMOUHandler(svc mouService) *MOUHandler {
	return &MOUHandler{service: svc}
}

// List godoc
// @Summary List MOUs
// @Tags MOUs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /mous [get]
func (h *MOUHandler) List(c *gin.Context) {
	mous, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, mous, len(mous))
}

// Create godoc
// @Summary Add an MOU
// @Description Creates the MOU and increments the partner school's count
// @Tags MOUs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateMOURequest true "MOU payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /mous [post]
func (h *MOUHandler) Create(c *gin.Context) {
	var req models.CreateMOURequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid MOU payload"))
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "MOU added successfully", res.MOU, map[string]interface{}{"school": res.School})
}
