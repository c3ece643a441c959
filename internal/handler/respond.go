package handler

import (
	"github.com/calltrack/dnc-registry/internal/apperr"
	"github.com/calltrack/dnc-registry/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError renders the one error envelope every operation shares.
// Internal failures are logged with their cause here; the caller only sees
// the generic message.
func respondError(c *gin.Context, err error) {
	appErr := apperr.From(err)

	if appErr.Kind == apperr.KindInternalFailure {
		logger.Log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr),
		)
	}

	c.JSON(appErr.Status(), appErr)
}

// bindError is the envelope for malformed request bodies.
func bindError(c *gin.Context) {
	appErr := apperr.Validation("invalid request body")
	c.JSON(appErr.Status(), appErr)
}
