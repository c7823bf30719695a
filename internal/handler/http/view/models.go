package view

import (
	"net/url"
	"strconv"
	"strings"

	"project-board/internal/dto"
	"project-board/internal/repository"
)

// ArticleList is the model of the index, search and hashtag pages.
type ArticleList struct {
	Base
	// Path is the page's own path, used to build paging and sort links.
	Path                 string
	Articles             repository.Page[dto.ArticleDTO]
	PaginationBarNumbers []int
	SearchType           string
	SearchValue          string
	// Hashtags is only filled on the hashtag page.
	Hashtags []string
	// CommentCounts is keyed by article id. Nil hides the column.
	CommentCounts map[int64]int64
}

// HasCommentCounts reports whether the comment column is shown.
func (m ArticleList) HasCommentCounts() bool { return m.CommentCounts != nil }

// CommentCount returns the number of comments on article id.
func (m ArticleList) CommentCount(id int64) int64 { return m.CommentCounts[id] }

func (m ArticleList) query() url.Values {
	q := url.Values{}
	if m.SearchType != "" {
		q.Set("searchType", m.SearchType)
	}
	if m.SearchValue != "" {
		q.Set("searchValue", m.SearchValue)
	}
	if m.Articles.Size > 0 {
		q.Set("size", strconv.Itoa(m.Articles.Size))
	}
	return q
}

// PageHref links to page n keeping search, size and sort.
func (m ArticleList) PageHref(n int) string {
	q := m.query()
	q.Set("page", strconv.Itoa(n))
	for _, o := range m.Articles.Sort {
		q.Add("sort", o.Property+","+strings.ToLower(string(o.Direction)))
	}
	return m.Path + "?" + q.Encode()
}

// SortHref links to the first page sorted by field. Clicking the column that
// is already sorted ascending flips it to descending.
func (m ArticleList) SortHref(field string) string {
	dir := "asc"
	if len(m.Articles.Sort) > 0 {
		first := m.Articles.Sort[0]
		if first.Property == field && first.Direction == repository.Asc {
			dir = "desc"
		}
	}
	q := m.query()
	q.Set("page", "0")
	q.Set("sort", field+","+dir)
	return m.Path + "?" + q.Encode()
}

// SortIndicator returns an arrow for the active sort field.
func (m ArticleList) SortIndicator(field string) string {
	if len(m.Articles.Sort) == 0 || m.Articles.Sort[0].Property != field {
		return ""
	}
	if m.Articles.Sort[0].Direction == repository.Asc {
		return "▲"
	}
	return "▼"
}

// ArticleDetail is the model of the article page.
type ArticleDetail struct {
	Base
	Article         dto.ArticleDTO
	ArticleComments []dto.ArticleCommentDTO
	TotalCount      int64
}

// IsOwner reports whether the viewer wrote the article.
func (m ArticleDetail) IsOwner() bool {
	return m.Viewer.SignedIn() && m.Viewer.UserID == m.Article.UserAccount.UserID
}

// CanDelete reports whether the viewer wrote comment c.
func (m ArticleDetail) CanDelete(c dto.ArticleCommentDTO) bool {
	return m.Viewer.SignedIn() && m.Viewer.UserID == c.UserAccount.UserID
}

// Form modes of ArticleForm.
const (
	FormCreate = "CREATE"
	FormUpdate = "UPDATE"
)

// ArticleForm is the model of the create and edit form.
type ArticleForm struct {
	Base
	FormStatus string
	Action     string
	ArticleID  int64
	Title      string
	Content    string
	Hashtag    string
	// Error is a validation message from a rejected submission.
	Error string
}

// IsUpdate reports whether the form edits an existing article.
func (m ArticleForm) IsUpdate() bool { return m.FormStatus == FormUpdate }

// Login is the model of the login page.
type Login struct {
	Base
	UserID string
	Next   string
	Error  string
}
