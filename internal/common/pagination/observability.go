package pagination

import (
	"log/slog"
	"time"

	"project-board/internal/repository"
)

// LogRequest logs a pagination request with structured fields.
func LogRequest(logger *slog.Logger, requestID, userID string, req repository.PageRequest) {
	logger.Info("Paginated request",
		"request_id", requestID,
		"user_id", userID,
		"page", req.Page,
		"size", req.Size,
		"sort", SortQuery(req.Sort))
}

// LogResponse logs a pagination response with duration and status.
func LogResponse(logger *slog.Logger, requestID string, req repository.PageRequest, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("Paginated response",
		"request_id", requestID,
		"page", req.Page,
		"size", req.Size,
		"returned_count", returnedCount,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError logs a pagination error with structured fields.
func LogError(logger *slog.Logger, requestID string, req repository.PageRequest, err error, errorType string) {
	logger.Error("Pagination error",
		"request_id", requestID,
		"page", req.Page,
		"size", req.Size,
		"error", err.Error(),
		"error_type", errorType)
}
