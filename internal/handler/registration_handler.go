package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sispa-api/internal/models"
	appErrors "github.com/noah-isme/sispa-api/pkg/errors"
	"github.com/noah-isme/sispa-api/pkg/response"
)

type registrationService interface {
	Submit(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
	Confirm(ctx context.Context, id string) (*models.VerificationResult, error)
	Deny(ctx context.Context, id string) (*models.VerificationResult, error)
}

// RegistrationHandler exposes admin registration and its e-mail verification links.
type RegistrationHandler struct {
	service registrationService
}

// NewRegistrationHandler constructs the handler.
func NewRegistrationHandler(svc registrationService) *RegistrationHandler {
	return &RegistrationHandler{service: svc}
}

// Register godoc
// @Summary Request an admin account
// @Description Stores a pending registration and mails confirm/deny links to the approver
// @Tags Registration
// @Accept json
// @Produce json
// @Param payload body models.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /admin/register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid registration payload"))
		return
	}

	res, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Registration submitted. An administrator will review your request.", res)
}

// Confirm godoc
// @Summary Approve a pending admin
// @Tags Registration
// @Produce json
// @Param pendingAdminId path string true "Pending admin ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/verify/yes/{pendingAdminId} [get]
func (h *RegistrationHandler) Confirm(c *gin.Context) {
	res, err := h.service.Confirm(c.Request.Context(), c.Param("pendingAdminId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Admin approved successfully", res)
}

// Deny godoc
// @Summary Reject a pending admin
// @Tags Registration
// @Produce json
// @Param pendingAdminId path string true "Pending admin ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/verify/no/{pendingAdminId} [get]
func (h *RegistrationHandler) Deny(c *gin.Context) {
	res, err := h.service.Deny(c.Request.Context(), c.Param("pendingAdminId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Admin request rejected", res)
}
