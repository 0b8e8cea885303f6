package handlers

import (
	"log/slog"
	"net/http"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves derived balances and ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// RegisterReportingRoutes registers report and balance routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/reports/ledger", h.getLedgerReport)
	rg.GET("/counterparties/:id/balance", h.getCounterpartyBalance)
}

func (h *reportingHandler) getLedgerReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantFromCtx(c, logger)
	if !ok {
		return
	}

	var params dto.LedgerReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.GetLedgerReport(c.Request.Context(), tenantID, params)
	if err != nil {
		logger.Error("Failed to build ledger report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger report"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerReportResponse(report))
}

func (h *reportingHandler) getCounterpartyBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantFromCtx(c, logger)
	if !ok {
		return
	}
	counterpartyID := c.Param("id")

	kind := domain.CounterpartyKind(c.DefaultQuery("kind", string(domain.CounterpartyCustomer)))
	if kind != domain.CounterpartyCustomer && kind != domain.CounterpartyVendor {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be customer or vendor"})
		return
	}

	balance, err := h.reportingService.GetCounterpartyBalance(c.Request.Context(), tenantID, counterpartyID, kind)
	if err != nil {
		logger.Error("Failed to derive counterparty balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to derive counterparty balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		CounterpartyID: counterpartyID,
		Balance:        balance,
	})
}
