package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sispa-api/internal/middleware"
	"github.com/noah-isme/sispa-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	claims, ok := middleware.CurrentAdmin(c)
	if !ok {
		return nil
	}
	return claims
}
