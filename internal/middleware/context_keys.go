package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// tenantIDKey is the key used to store the tenant ID in the request context.
const tenantIDKey = contextKey("tenantID")

// TenantScope is a Gin middleware that binds the tenant id from the route
// into the request context. Every core operation is scoped by this single
// binding point rather than each handler extracting it ad hoc.
func TenantScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.Param("tenant_id")
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "tenant id is required"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetTenantIDFromContext retrieves the tenant ID bound by TenantScope.
// It returns the tenant ID and a boolean indicating if it was found.
func GetTenantIDFromContext(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}
