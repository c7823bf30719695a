package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"project-board/internal/repository"
)

func TestArticleQueryBuilder_Contains(t *testing.T) {
	qb := NewArticleQueryBuilder()

	clause, args := qb.Contains("a.title", "50%_off")

	assert.Equal(t, "WHERE a.title ILIKE $1", clause)
	assert.Equal(t, []any{`%50\%\_off%`}, args)
}

func TestArticleQueryBuilder_Equals(t *testing.T) {
	qb := NewArticleQueryBuilder()

	clause, args := qb.Equals("a.hashtag", "#java")

	assert.Equal(t, "WHERE a.hashtag = $1", clause)
	assert.Equal(t, []any{"#java"}, args)
}

func TestArticleQueryBuilder_OrderBy(t *testing.T) {
	qb := NewArticleQueryBuilder()

	tests := []struct {
		name string
		sort []repository.Order
		want string
	}{
		{name: "default", sort: nil, want: "a.created_at DESC, a.id DESC"},
		{name: "title desc", sort: []repository.Order{{Property: "title", Direction: repository.Desc}}, want: "a.title DESC, a.id DESC"},
		{name: "lowercase direction", sort: []repository.Order{{Property: "userId", Direction: "desc"}}, want: "u.user_id DESC, a.id DESC"},
		{name: "snake case", sort: []repository.Order{{Property: "created_at", Direction: repository.Asc}}, want: "a.created_at ASC, a.id DESC"},
		{name: "id given", sort: []repository.Order{{Property: "id", Direction: repository.Asc}}, want: "a.id ASC"},
		{name: "unknown dropped", sort: []repository.Order{{Property: "password", Direction: repository.Asc}}, want: "a.created_at DESC, a.id DESC"},
		{
			name: "multiple",
			sort: []repository.Order{{Property: "hashtag", Direction: repository.Asc}, {Property: "title", Direction: repository.Desc}},
			want: "a.hashtag ASC, a.title DESC, a.id DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, qb.OrderBy(tt.sort))
		})
	}
}

func TestArticleQueryBuilder_LimitOffset(t *testing.T) {
	qb := NewArticleQueryBuilder()

	clause, args := qb.LimitOffset(1, repository.PageRequest{Page: 2, Size: 10})

	assert.Equal(t, "LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{10, 20}, args)
}
