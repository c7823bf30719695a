package http

import (
	"net/http"

	"project-board/internal/handler/http/respond"
)

const (
	maxAuthorizationBytes = 8 << 10
	maxPathBytes          = 2 << 10
)

// InputLimits rejects oversized Authorization headers and paths, and caps the
// request body at maxBodyBytes. Form parsing past the cap fails with an error
// the handlers map to 400.
func InputLimits(maxBodyBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthorizationBytes {
				respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "authorization header too large"})
				return
			}
			if len(r.URL.Path) > maxPathBytes {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}
			if maxBodyBytes > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
