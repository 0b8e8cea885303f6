package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// feedHandler serves the transaction feed projection.
type feedHandler struct {
	feedService portssvc.FeedSvcFacade
}

func newFeedHandler(fs portssvc.FeedSvcFacade) *feedHandler {
	return &feedHandler{feedService: fs}
}

// RegisterFeedRoutes registers the transaction feed route.
func RegisterFeedRoutes(rg *gin.RouterGroup, feedService portssvc.FeedSvcFacade) {
	h := newFeedHandler(feedService)
	rg.GET("/feed", h.listFeed)
}

func (h *feedHandler) listFeed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantFromCtx(c, logger)
	if !ok {
		return
	}

	var params dto.ListFeedParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.feedService.ListFeed(c.Request.Context(), tenantID, params)
	if err != nil {
		logger.Error("Failed to list transaction feed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transaction feed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
