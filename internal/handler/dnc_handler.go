package handler

import (
	"net/http"

	"github.com/calltrack/dnc-registry/internal/service"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DNCHandler struct {
	dncService *service.DNCService
}

func NewDNCHandler(dncService *service.DNCService) *DNCHandler {
	return &DNCHandler{
		dncService: dncService,
	}
}

type CreateDNCRequest struct {
	Phone    string  `json:"phone" binding:"required"`
	ReasonID string  `json:"reasonId" binding:"required"`
	Notes    *string `json:"notes"`
}

type UpdateDNCRequest struct {
	Phone    *string `json:"phone"`
	ReasonID *string `json:"reasonId"`
	Notes    *string `json:"notes"`
}

// List returns entries newest first, optionally filtered by a phone/notes
// substring.
// GET /api/dnc?search=
func (h *DNCHandler) List(c *gin.Context) {
	search := c.Query("search")

	entries, err := h.dncService.List(search)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Create registers a blocked number.
// POST /api/dnc
func (h *DNCHandler) Create(c *gin.Context) {
	var req CreateDNCRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("DNC create request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		bindError(c)
		return
	}

	entry, err := h.dncService.Create(req.Phone, req.ReasonID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Get returns one entry joined with its reason.
// GET /api/dnc/:id
func (h *DNCHandler) Get(c *gin.Context) {
	entry, err := h.dncService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Update applies a partial update of phone, reason and notes.
// PUT /api/dnc/:id
func (h *DNCHandler) Update(c *gin.Context) {
	var req UpdateDNCRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}

	entry, err := h.dncService.Update(c.Param("id"), req.Phone, req.ReasonID, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Delete removes an entry permanently.
// DELETE /api/dnc/:id
func (h *DNCHandler) Delete(c *gin.Context) {
	if err := h.dncService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Number removed from the DNC list"})
}
