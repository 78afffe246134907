package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sispa-api/internal/models"
	"github.com/noah-isme/sispa-api/pkg/response"
)

type fieldService interface {
	List(ctx context.Context) ([]models.Field, error)
	Get(ctx context.Context, id string) (*models.FieldDetail, error)
}

// FieldHandler handles field endpoints.
type FieldHandler struct {
	service fieldService
}

// NewFieldHandler constructs the handler.
func NewFieldHandler(svc fieldService) *FieldHandler {
	return &FieldHandler{service: svc}
}

// List godoc
// @Summary List fields
// @Tags Fields
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /fields [get]
func (h *FieldHandler) List(c *gin.Context) {
	fields, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, fields, len(fields))
}

// Get godoc
// @Summary Courses offered in one field
// @Tags Fields
// @Produce json
// @Security BearerAuth
// @Param fieldId path string true "Field ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /fields/{fieldId} [get]
func (h *FieldHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("fieldId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Fields(c, http.StatusOK, gin.H{
		"field":        detail.Field,
		"coursesCount": len(detail.Courses),
		"courses":      detail.Courses,
	})
}
