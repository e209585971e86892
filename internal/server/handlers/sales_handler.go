package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/salesboard/internal/domain/models"
	"github.com/mamadbah2/salesboard/internal/server/middleware"
)

// SalesService is what the HTTP layer needs from the sales service.
type SalesService interface {
	List(ctx context.Context, params models.ListParams) (*models.Page, error)
	Get(ctx context.Context, id string) (*models.Sale, bool, error)
	Catalog(ctx context.Context) (*models.Catalog, error)
}

// SalesHandler serves the read-only sales API.
type SalesHandler struct {
	svc    SalesService
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter.
func NewSalesHandler(svc SalesService, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{svc: svc, logger: logger}
}

// List returns one page of sales for the query string.
func (h *SalesHandler) List(c *gin.Context) {
	var params models.ListParams
	// Every field is a string, so binding cannot fail on bad numbers; those
	// fall back to defaults in the service.
	if err := c.ShouldBindQuery(&params); err != nil {
		h.logger.Warn("invalid list query", zap.Error(err))
	}

	page, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		h.serverError(c, "failed listing sales", err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get returns one sale by document id or transaction id.
func (h *SalesHandler) Get(c *gin.Context) {
	id := c.Param("id")

	sale, found, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.serverError(c, "failed fetching sale", err, zap.String("id", id))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	c.JSON(http.StatusOK, sale)
}

// Filters returns the filter catalog.
func (h *SalesHandler) Filters(c *gin.Context) {
	catalog, err := h.svc.Catalog(c.Request.Context())
	if err != nil {
		h.serverError(c, "failed building filter catalog", err)
		return
	}

	c.JSON(http.StatusOK, catalog)
}

// Health reports liveness.
func (h *SalesHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SalesHandler) serverError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err), zap.String("request_id", c.GetString(middleware.RequestIDKey)))
	h.logger.Error(msg, fields...)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
}
