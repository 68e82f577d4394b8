// Package httpx holds the JSON request/response helpers shared by the gin
// handlers.
package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"accounts/internal/apperr"

	"github.com/gin-gonic/gin"
)

// invalidJSON is reported when a request body cannot be decoded
const invalidJSON = "Invalid JSON"

// BindJSON decodes the request body into dst. An empty body decodes as {}.
// On failure it writes a 400 response and returns false.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidJSON})
		return false
	}
	return true
}

// Error writes err as {"error": message} with the status of its kind.
// Server-side failures are logged with their cause.
func Error(c *gin.Context, logger *slog.Logger, err error) {
	status := apperr.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "request failed",
			"path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"),
			"error", err.Error(),
		)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
