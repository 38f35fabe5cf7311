package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	ErrSuggestionsUnavailable = errors.New("task suggestions are not configured")
	ErrCascadeRunNotFound     = errors.New("cascade run not found")
)

// ValidationError is a request the store must never see. Handlers answer 400
// with Message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// timestamp formats t the way server-generated stamps are stored.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// compensate deletes a document shell whose state could not be set. A failed
// delete is logged and otherwise ignored so the caller keeps the original error.
func compensate(ctx context.Context, logger *slog.Logger, kind, id string, del func(context.Context, string) error) {
	if err := del(context.WithoutCancel(ctx), id); err != nil {
		logger.Error("failed to remove orphaned document shell",
			"kind", kind,
			"id", id,
			"error", err,
		)
		return
	}
	logger.Warn("removed orphaned document shell", "kind", kind, "id", id)
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
