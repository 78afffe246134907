package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sispa-api/internal/service"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
)

type stubExportService struct {
	format string
}

func (s *stubExportService) file(format string) (*service.ExportFile, error) {
	s.format = format
	if format != "" && format != "csv" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	return &service.ExportFile{Filename: "mous-20240110.csv", ContentType: "text/csv", Body: []byte("ID\nM1\n")}, nil
}

func (s *stubExportService) MOUs(_ context.Context, format string) (*service.ExportFile, error) {
	return s.file(format)
}

func (s *stubExportService) Courses(_ context.Context, format string) (*service.ExportFile, error) {
	return s.file(format)
}

func (s *stubExportService) Participants(_ context.Context, format string) (*service.ExportFile, error) {
	return s.file(format)
}

func TestExportHandlerStreamsAttachment(t *testing.T) {
	svc := &stubExportService{}
	h := NewExportHandler(svc)

	c, w := newTestContext(http.MethodGet, "/api/mous/export?format=csv", nil)
	h.MOUs(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", svc.format)
	assert.Equal(t, `attachment; filename="mous-20240110.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID\nM1\n", w.Body.String())
}

func TestExportHandlerRejectsFormat(t *testing.T) {
	h := NewExportHandler(&stubExportService{})

	c, w := newTestContext(http.MethodGet, "/api/participants/export?format=xlsx", nil)
	h.Participants(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "format must be csv or pdf", decodeBody(t, w)["error"])
}
