package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Zero(t, w.BytesWritten())
	assert.False(t, w.Written())
}

func TestWrap_DoesNotDoubleWrap(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	assert.Same(t, w, Wrap(w))
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	w.WriteHeader(http.StatusFound)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusFound, w.StatusCode())
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, w.Written())
}

func TestResponseWriter_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte("hello "))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	_, _ = w.Write([]byte("board"))

	assert.Equal(t, 11, w.BytesWritten())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello board", rec.Body.String())
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Same(t, rec, Wrap(rec).Unwrap())
	assert.NoError(t, http.NewResponseController(Wrap(rec)).Flush())
}
