// Package pathutil parses ids out of request paths and folds dynamic paths
// into route templates for metric labels.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a path id is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// PathID reads the named wildcard of a ServeMux pattern such as
// "GET /articles/{id}" and parses it as an id.
func PathID(r *http.Request, name string) (int64, error) {
	return ParseID(r.PathValue(name))
}

// ExtractID strips prefix from path and parses the rest as an id.
//
//	id, err := ExtractID("/articles/123", "/articles/")
//	// 123, nil
func ExtractID(path, prefix string) (int64, error) {
	return ParseID(strings.TrimPrefix(path, prefix))
}
