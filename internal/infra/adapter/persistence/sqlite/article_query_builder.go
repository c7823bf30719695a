// Package sqlite provides SQLite implementations of the repository interfaces.
// The SQL mirrors the PostgreSQL adapter with ? placeholders and LIKE, which
// SQLite already matches case-insensitively for ASCII.
package sqlite

import (
	"fmt"
	"strings"

	"project-board/internal/pkg/search"
	"project-board/internal/repository"
)

var sortColumns = map[string]string{
	"id":          "a.id",
	"title":       "a.title",
	"content":     "a.content",
	"hashtag":     "a.hashtag",
	"userId":      "u.user_id",
	"user_id":     "u.user_id",
	"nickname":    "u.nickname",
	"createdAt":   "a.created_at",
	"created_at":  "a.created_at",
	"createdBy":   "a.created_by",
	"created_by":  "a.created_by",
	"modifiedAt":  "a.modified_at",
	"modified_at": "a.modified_at",
	"modifiedBy":  "a.modified_by",
	"modified_by": "a.modified_by",
}

const defaultArticleOrder = "a.created_at DESC, a.id DESC"

// ArticleQueryBuilder builds the WHERE and ORDER BY fragments of the article page queries.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// Contains returns a substring condition on column with backslash escaping.
func (qb *ArticleQueryBuilder) Contains(column, value string) (clause string, args []any) {
	return fmt.Sprintf(`WHERE %s LIKE ? ESCAPE '\'`, column), []any{search.ContainsPattern(value)}
}

// Equals returns an exact-match condition on column.
func (qb *ArticleQueryBuilder) Equals(column string, value any) (clause string, args []any) {
	return fmt.Sprintf("WHERE %s = ?", column), []any{value}
}

// OrderBy renders the ORDER BY list for sort. Unknown properties are ignored
// and the article id is appended as a tie-breaker.
func (qb *ArticleQueryBuilder) OrderBy(sort []repository.Order) string {
	parts := make([]string, 0, len(sort)+1)
	hasID := false
	for _, o := range sort {
		col, ok := sortColumns[o.Property]
		if !ok {
			continue
		}
		dir := "ASC"
		if strings.EqualFold(string(o.Direction), string(repository.Desc)) {
			dir = "DESC"
		}
		if col == "a.id" {
			hasID = true
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return defaultArticleOrder
	}
	if !hasID {
		parts = append(parts, "a.id DESC")
	}
	return strings.Join(parts, ", ")
}

// LimitOffset returns the LIMIT/OFFSET fragment and its arguments.
func (qb *ArticleQueryBuilder) LimitOffset(req repository.PageRequest) (clause string, args []any) {
	return "LIMIT ? OFFSET ?", []any{req.Size, req.Offset()}
}

// inPlaceholders returns "?, ?, ?" for n arguments.
func inPlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
