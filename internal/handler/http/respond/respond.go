// Package respond writes JSON responses for the board's API routes.
// Error helpers mask internal failures so store errors never reach clients.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as JSON with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are gone, only logging is left
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes {"error": err.Error()} unmasked.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safeFragments mark messages that describe the request rather than the server.
var safeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already taken",
	"must be",
	"cannot be",
	"is empty",
	"too long",
}

// IsSafe reports whether err's message may be shown to a client for code.
// 5xx messages are never safe.
func IsSafe(code int, err error) bool {
	if err == nil || code >= 500 {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, f := range safeFragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

// SafeError writes client errors as-is and replaces everything else with
// "internal server error", logging the sanitized original.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}
	if IsSafe(code, err) {
		JSON(w, code, map[string]string{"error": err.Error()})
		return
	}
	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}
