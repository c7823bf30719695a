package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/articles/123":                    "/articles/:id",
		"/articles/123/":                   "/articles/:id",
		"/articles/123?page=1":             "/articles/:id",
		"/articles/9/form":                 "/articles/:id/form",
		"/articles/9/delete":               "/articles/:id/delete",
		"/comments/3/delete":               "/comments/:id/delete",
		"/api/articles/5":                  "/api/articles/:id",
		"/api/articles/5/articleComments":  "/api/articles/:id/articleComments",
		"/api/userAccounts":                "/api/userAccounts",
		"/api/userAccounts/uno":            "/api/userAccounts",
		"/swagger/index.html":              "/swagger/*",
		"/articles":                        "/articles",
		"/articles/search":                 "/articles/search",
		"/articles/search-hashtag?q=%23go": "/articles/search-hashtag",
		"/articles/form":                   "/articles/form",
		"/":                                "/",
		"/health":                          "/health",
		"/unknown/path/123":                "/unknown/path/123",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePath(in), in)
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	assert.Greater(t, GetExpectedCardinality(), len(pathPatterns))
}

func BenchmarkNormalizePath(b *testing.B) {
	paths := []string{"/articles/123", "/articles/search", "/api/articles/5/articleComments", "/health"}
	for i := 0; i < b.N; i++ {
		_ = NormalizePath(paths[i%len(paths)])
	}
}
