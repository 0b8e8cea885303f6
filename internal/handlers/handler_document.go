package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// documentHandler handles HTTP requests for source documents. The document
// type arrives in the route (e.g. /documents/sales-invoice) and selects the
// record operation.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{documentService: ds}
}

// RegisterDocumentRoutes registers routes related to source documents.
func RegisterDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/documents/:doc_type")
	{
		documents.POST("", h.recordDocument)
		documents.GET("/:id", h.getDocument)
		documents.PUT("/:id", h.updateDocument)
		documents.DELETE("/:id", h.deleteDocument)
		documents.GET("/:id/postings", h.listPostings)
	}
}

// recordFunc selects the service operation for a document type.
func (h *documentHandler) recordFunc(docType domain.DocumentType) func(context.Context, string, dto.RecordDocumentRequest, string) (*domain.SourceDocument, error) {
	switch docType {
	case domain.DocSalesInvoice:
		return h.documentService.RecordSalesInvoice
	case domain.DocSalesReturn:
		return h.documentService.RecordSalesReturn
	case domain.DocPurchaseInvoice:
		return h.documentService.RecordPurchaseInvoice
	case domain.DocPurchaseReturn:
		return h.documentService.RecordPurchaseReturn
	case domain.DocPaymentIn:
		return h.documentService.RecordPaymentIn
	case domain.DocPaymentOut:
		return h.documentService.RecordPaymentOut
	case domain.DocIncome:
		return h.documentService.RecordIncome
	case domain.DocExpense:
		return h.documentService.RecordExpense
	default:
		return nil
	}
}

func docTypeFromRoute(c *gin.Context) (domain.DocumentType, bool) {
	docType, err := domain.ParseDocumentType(c.Param("doc_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return docType, true
}

func (h *documentHandler) recordDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantFromCtx(c, logger)
	if !ok {
		return
	}
	docType, ok := docTypeFromRoute(c)
	if !ok {
		return
	}

	var req dto.RecordDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	record := h.recordFunc(docType)
	doc, err := record(c.Request.Context(), tenantID, req, actingUserID(c))
	if err != nil {
		h.writeRecordError(c, logger, err)
		return
	}

	logger.Info("Document recorded",
		slog.String("doc_type", string(docType)),
		slog.String("document_id", doc.DocumentID))
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc, nil))
}

// writeRecordError maps posting-engine failures onto HTTP statuses. A missing
// posting account means the tenant was never provisioned; the write was
// aborted so nothing needs cleanup.
func (h *documentHandler) writeRecordError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Document write failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write document"})
	}
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantFromCtx(c, logger)
	if !ok {
		return
	}
	docType, ok := docTypeFromRoute(c)
	if !ok {
		return
	}
	documentID := c.Param("id")

	doc, items, err := h.documentService.GetDocument(c.Request.Context(), tenantID, docType, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		} else {
			logger.Error("Failed to get document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve document"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, items))
}

func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantFromCtx(c, logger)
	if !ok {
		return
	}
	docType, ok := docTypeFromRoute(c)
	if !ok {
		return
	}
	documentID := c.Param("id")

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), tenantID, docType, documentID, req, actingUserID(c))
	if err != nil {
		h.writeRecordError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, nil))
}

func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantFromCtx(c, logger)
	if !ok {
		return
	}
	docType, ok := docTypeFromRoute(c)
	if !ok {
		return
	}
	documentID := c.Param("id")

	if err := h.documentService.DeleteDocument(c.Request.Context(), tenantID, docType, documentID, actingUserID(c)); err != nil {
		h.writeRecordError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *documentHandler) listPostings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, ok := tenantFromCtx(c, logger)
	if !ok {
		return
	}
	docType, ok := docTypeFromRoute(c)
	if !ok {
		return
	}
	documentID := c.Param("id")

	postings, err := h.documentService.ListPostingsForDocument(c.Request.Context(), tenantID, docType, documentID)
	if err != nil {
		logger.Error("Failed to list postings for document", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list postings"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingResponses(postings))
}
