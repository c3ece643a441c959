package handler

import (
	"net/http"

	"github.com/calltrack/dnc-registry/internal/service"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReasonHandler struct {
	reasonService *service.ReasonService
}

func NewReasonHandler(reasonService *service.ReasonService) *ReasonHandler {
	return &ReasonHandler{
		reasonService: reasonService,
	}
}

type CreateReasonRequest struct {
	Name string `json:"name" binding:"required"`
}

// List returns all reasons with their entry counts, alphabetically.
// GET /api/reasons
func (h *ReasonHandler) List(c *gin.Context) {
	reasons, err := h.reasonService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reasons)
}

// Create adds a reason category (admin only; gated in the router).
// POST /api/reasons
func (h *ReasonHandler) Create(c *gin.Context) {
	var req CreateReasonRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("Reason create request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		bindError(c)
		return
	}

	reason, err := h.reasonService.Create(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reason)
}

// Delete removes a reason unless DNC entries still reference it.
// DELETE /api/reasons/:id
func (h *ReasonHandler) Delete(c *gin.Context) {
	if err := h.reasonService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reason deleted"})
}
