package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeout_Completes(t *testing.T) {
	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("done"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestTimeout_Expires(t *testing.T) {
	tests := []struct {
		path        string
		contentType string
		body        string
	}{
		{"/api/articles", "application/json", "request timeout"},
		{"/articles", "text/html; charset=utf-8", "took too long"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			release := make(chan struct{})
			writeErr := make(chan error, 1)
			h := Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				<-r.Context().Done()
				<-release
				_, err := w.Write([]byte("late"))
				writeErr <- err
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			close(release)

			assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
			assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.body)
			assert.ErrorIs(t, <-writeErr, http.ErrHandlerTimeout)
			assert.NotContains(t, rec.Body.String(), "late")
		})
	}
}

func TestTimeout_Disabled(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	h := Timeout(0)(next)
	assert.NotNil(t, h)
}

func TestTimeout_HeadersReachClient(t *testing.T) {
	h := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/articles")
		w.WriteHeader(http.StatusFound)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/articles/form", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/articles", rec.Header().Get("Location"))
}

func TestTimeout_PanicReachesRecover(t *testing.T) {
	h := Recover(nil, nil)(Timeout(time.Second)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
