// Package postgres provides PostgreSQL implementations of the repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"project-board/internal/pkg/search"
	"project-board/internal/repository"
)

// sortColumns maps the sort properties accepted from clients to qualified columns.
// Both the camelCase names used in query strings and the column names are accepted.
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

// ArticleQueryBuilder builds the WHERE and ORDER BY fragments of the article
// page queries. The same WHERE clause is shared by the COUNT and SELECT queries.
// PostgreSQL-specific: ILIKE and $N placeholders.
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// Contains returns a case-insensitive substring condition on column.
func (qb *ArticleQueryBuilder) Contains(column, value string) (clause string, args []any) {
	return fmt.Sprintf("WHERE %s ILIKE $1", column), []any{search.ContainsPattern(value)}
}

// Equals returns an exact-match condition on column.
func (qb *ArticleQueryBuilder) Equals(column string, value any) (clause string, args []any) {
	return fmt.Sprintf("WHERE %s = $1", column), []any{value}
}

// OrderBy renders the ORDER BY list for sort. Unknown properties are ignored.
// The article id is appended as a tie-breaker so paging is stable.
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

// LimitOffset returns the LIMIT/OFFSET fragment with placeholders numbered
// after argCount existing arguments.
func (qb *ArticleQueryBuilder) LimitOffset(argCount int, req repository.PageRequest) (clause string, args []any) {
	clause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argCount+1, argCount+2)
	return clause, []any{req.Size, req.Offset()}
}
