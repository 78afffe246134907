package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sispa-api/internal/models"
	"github.com/noah-isme/sispa-api/pkg/response"
)

type schoolService interface {
	ListActive(ctx context.Context) ([]models.School, error)
	Get(ctx context.Context, id string) (*models.SchoolDetail, error)
}

// SchoolHandler handles school endpoints.
type SchoolHandler struct {
	service schoolService
}

// NewSchoolHandler constructs the handler.
func NewSchoolHandler(svc schoolService) *SchoolHandler {
	return &SchoolHandler{service: svc}
}

// ListActive godoc
// @Summary List schools with at least one MOU
// @Tags Schools
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /schools/active [get]
func (h *SchoolHandler) ListActive(c *gin.Context) {
	schools, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, schools, len(schools))
}

// Get godoc
// @Summary MOUs signed with one school
// @Tags Schools
// @Produce json
// @Security BearerAuth
// @Param schoolId path string true "School ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{schoolId} [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("schoolId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Fields(c, http.StatusOK, gin.H{
		"schoolId": detail.School.ID,
		"school":   detail.School,
		"count":    len(detail.MOUs),
		"data":     detail.MOUs,
	})
}
