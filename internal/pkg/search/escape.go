// Package search holds helpers for building LIKE/ILIKE patterns from user input.
package search

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE wildcards in s so it matches literally.
// The escape character is a backslash.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns a LIKE pattern matching any value that contains s.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}
