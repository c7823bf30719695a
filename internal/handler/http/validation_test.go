package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputLimits(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		auth     string
		body     string
		wantCode int
	}{
		{"ok", "/articles", "Bearer abc", "title=x", http.StatusOK},
		{"auth at limit", "/articles", strings.Repeat("a", maxAuthorizationBytes), "", http.StatusOK},
		{"auth too large", "/articles", strings.Repeat("a", maxAuthorizationBytes+1), "", http.StatusBadRequest},
		{"path too long", "/" + strings.Repeat("p", maxPathBytes), "", "", http.StatusRequestURITooLong},
		{"body over limit", "/articles/form", "", strings.Repeat("b", 65), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := InputLimits(64)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := io.ReadAll(r.Body); err != nil {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
