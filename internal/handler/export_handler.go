package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sispa-api/internal/service"
	"github.com/noah-isme/sispa-api/pkg/response"
)

type exportService interface {
	MOUs(ctx context.Context, format string) (*service.ExportFile, error)
	Courses(ctx context.Context, format string) (*service.ExportFile, error)
	Participants(ctx context.Context, format string) (*service.ExportFile, error)
}

// ExportHandler streams CSV and PDF downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// MOUs godoc
// @Summary Export MOUs
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /mous/export [get]
func (h *ExportHandler) MOUs(c *gin.Context) {
	h.serve(c, h.service.MOUs)
}

// Courses godoc
// @Summary Export courses
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /courses/export [get]
func (h *ExportHandler) Courses(c *gin.Context) {
	h.serve(c, h.service.Courses)
}

// Participants godoc
// @Summary Export participants
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /participants/export [get]
func (h *ExportHandler) Participants(c *gin.Context) {
	h.serve(c, h.service.Participants)
}

func (h *ExportHandler) serve(c *gin.Context, render func(ctx context.Context, format string) (*service.ExportFile, error)) {
	file, err := render(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
