package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sinahatake/currency-exchange-api/internal/apperrors"
)

// statusForError maps an error kind to its HTTP status.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. Client errors carry the service message;
// anything else is logged and answered with fallback so internals never leak.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", apperrors.Detail(err)))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", apperrors.Message(err)))
	c.JSON(status, gin.H{"error": apperrors.Message(err)})
}

// badRequest answers a malformed request that never reached a service.
func badRequest(c *gin.Context, logger *slog.Logger, message string, err error) {
	attrs := []any{slog.String("reason", message)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.Warn("Malformed request", attrs...)
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
