package handler

import (
	"net/http"

	"github.com/calltrack/dnc-registry/internal/models"
	"github.com/calltrack/dnc-registry/internal/service"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler serves the admin-only account management surface.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

type CreateUserRequest struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     models.Role `json:"role"`
}

// List returns every account; hashes never leave the service.
// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Create registers an account. Role defaults to USER.
// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.Warn("User create request parsing failed",
			zap.String("ip", c.ClientIP()),
			zap.Error(err),
		)
		bindError(c)
		return
	}

	logger.Log.Info("Admin creating user",
		zap.String("admin_id", callerID(c).String()),
		zap.String("username", req.Username),
	)

	user, err := h.userService.Create(req.Username, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Delete removes an account; deleting your own is forbidden.
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Param("id"), callerID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// callerID returns the authenticated principal's id set by the access
// middleware.
func callerID(c *gin.Context) uuid.UUID {
	if id, exists := c.Get("user_id"); exists {
		if parsed, ok := id.(uuid.UUID); ok {
			return parsed
		}
	}
	return uuid.Nil
}
