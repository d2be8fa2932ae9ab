package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"snapwall/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code int, reason string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"reason":  reason,
			"message": message,
		},
	})
}

// AppError writes err to the client. Classified errors keep their status
// and code; anything else becomes a generic 500 with the cause logged
// server-side only.
func AppError(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		Error(c, ae.HTTPCode, ae.Code, ae.Reason, ae.Message)
		return
	}

	slog.Error("unclassified error", "method", c.Request.Method, "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"message": "internal server error",
		},
	})
}
