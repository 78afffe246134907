package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
	"github.com/noah-isme/sispa-api/pkg/response"
)

type courseService interface {
	Running(ctx context.Context) ([]models.Course, error)
	Completed(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, req models.CreateCourseRequest) (*models.CreateCourseResult, error)
}

// CourseHandler handles course endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(svc courseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Running godoc
// @Summary List running courses
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /courses/running [get]
func (h *CourseHandler) Running(c *gin.Context) {
	courses, err := h.service.Running(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, courses, len(courses))
}

// Completed godoc
// @Summary List completed courses
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /courses/completed [get]
func (h *CourseHandler) Completed(c *gin.Context) {
	courses, err := h.service.Completed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, courses, len(courses))
}

// Create godoc
// @Summary Add a course
// @Description Creates the course and increments its field's count
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req models.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid course payload"))
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Course added successfully", res.Course, map[string]interface{}{"field": res.Field})
}
