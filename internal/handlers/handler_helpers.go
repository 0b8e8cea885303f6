package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// actingUserID returns the user id recorded in audit fields. Authentication
// lives in front of this service; the gateway forwards the identity header.
func actingUserID(c *gin.Context) string {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		return userID
	}
	return "system"
}

// tenantFromCtx extracts the tenant bound by the TenantScope middleware,
// writing a 400 response when it is missing.
func tenantFromCtx(c *gin.Context, logger *slog.Logger) (string, bool) {
	tenantID, ok := middleware.GetTenantIDFromContext(c.Request.Context())
	if !ok {
		logger.Error("Tenant ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant id is required"})
		return "", false
	}
	return tenantID, true
}
