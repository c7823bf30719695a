package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its label template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// Most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/articles/\d+$`), Template: "/articles/:id"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/form$`), Template: "/articles/:id/form"},
	{Pattern: regexp.MustCompile(`^/articles/\d+/delete$`), Template: "/articles/:id/delete"},
	{Pattern: regexp.MustCompile(`^/comments/\d+/delete$`), Template: "/comments/:id/delete"},
	{Pattern: regexp.MustCompile(`^/api/articles/\d+$`), Template: "/api/articles/:id"},
	{Pattern: regexp.MustCompile(`^/api/articles/\d+/articleComments$`), Template: "/api/articles/:id/articleComments"},
	{Pattern: regexp.MustCompile(`^/api/userAccounts(/.*)?$`), Template: "/api/userAccounts"},
	{Pattern: regexp.MustCompile(`^/swagger/.+$`), Template: "/swagger/*"},
}

// NormalizePath folds ids out of a request path so metric labels stay bounded.
// The query string and a trailing slash are dropped; unknown paths pass through.
//
//	NormalizePath("/articles/123")         // "/articles/:id"
//	NormalizePath("/articles/123/form?x")  // "/articles/:id/form"
//	NormalizePath("/articles/search")      // "/articles/search"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}

// GetExpectedCardinality estimates the number of distinct path labels:
// the templates plus the static routes of the board.
func GetExpectedCardinality() int {
	const staticRoutes = 14 // /, /articles, /articles/search, /login, /health, ...
	return len(pathPatterns) + staticRoutes
}
