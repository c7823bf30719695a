package entity

import (
	"strings"
	"unicode/utf8"
)

// ArticleComment is a reply attached to one article and written by one user account.
type ArticleComment struct {
	ID          int64
	ArticleID   int64
	UserAccount UserAccount
	Content     string
	Audit
}

// Validate checks the comment body and its references.
func (c *ArticleComment) Validate() error {
	if c.ArticleID <= 0 {
		return &ValidationError{Field: "articleId", Message: "article is required"}
	}
	if strings.TrimSpace(c.Content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if utf8.RuneCountInString(c.Content) > MaxCommentLength {
		return &ValidationError{Field: "content", Message: "content is too long"}
	}
	if c.UserAccount.UserID == "" {
		return &ValidationError{Field: "userId", Message: "author is required"}
	}
	return nil
}

// IsWrittenBy reports whether userID is the author of the comment.
func (c *ArticleComment) IsWrittenBy(userID string) bool {
	return c.UserAccount.UserID != "" && c.UserAccount.UserID == userID
}
