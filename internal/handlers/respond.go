package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/proposal-board-api/internal/errors"
	"github.com/yukikurage/proposal-board-api/internal/services"
)

// respondError logs a failed request with its endpoint and the id it
// concerned, then writes the matching error response.
func respondError(c *gin.Context, logger *slog.Logger, endpoint, id string, err error) {
	var validationErr *services.ValidationError
	var cascadeErr *services.CascadeError

	switch {
	case errors.As(err, &validationErr):
		logger.Warn("request rejected", "endpoint", endpoint, "id", id, "error", err)
		apierrors.BadRequest(c, validationErr.Message)
		return
	case errors.Is(err, services.ErrSuggestionsUnavailable):
		logger.Warn("request rejected", "endpoint", endpoint, "id", id, "error", err)
		apierrors.ServiceUnavailable(c, err.Error())
		return
	case errors.Is(err, services.ErrCascadeRunNotFound):
		logger.Warn("request rejected", "endpoint", endpoint, "id", id, "error", err)
		apierrors.NotFound(c, err.Error())
		return
	case errors.As(err, &cascadeErr):
		logger.Error("request failed",
			"endpoint", endpoint,
			"id", id,
			"processed_tasks", cascadeErr.Tasks,
			"processed_proposals", cascadeErr.Proposals,
			"error", err,
		)
	default:
		logger.Error("request failed", "endpoint", endpoint, "id", id, "error", err)
	}
	apierrors.InternalError(c, err.Error())
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
