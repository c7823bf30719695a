// Package entity defines the domain objects of the board: user accounts,
// articles and their comments, together with validation rules and
// domain-level errors.
package entity

import (
	"strings"
	"unicode/utf8"
)

// Article is a titled post written by exactly one user account.
// Hashtag is optional and conventionally starts with "#".
type Article struct {
	ID          int64
	UserAccount UserAccount
	Title       string
	Content     string
	Hashtag     *string
	Audit
}

// IsOwnedBy reports whether userID is the author of the article.
func (a *Article) IsOwnedBy(userID string) bool {
	return a.UserAccount.UserID != "" && a.UserAccount.UserID == userID
}

// Validate checks the fields that the store requires to be present.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(a.Title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: "title is too long"}
	}
	if strings.TrimSpace(a.Content) == "" {
		return &ValidationError{Field: "content", Message: "content is required"}
	}
	if utf8.RuneCountInString(a.Content) > MaxContentLength {
		return &ValidationError{Field: "content", Message: "content is too long"}
	}
	if a.Hashtag != nil && utf8.RuneCountInString(*a.Hashtag) > MaxHashtagLength {
		return &ValidationError{Field: "hashtag", Message: "hashtag is too long"}
	}
	if a.UserAccount.UserID == "" {
		return &ValidationError{Field: "userId", Message: "owner is required"}
	}
	return nil
}

// HashtagValue returns the hashtag or an empty string when unset.
func (a *Article) HashtagValue() string {
	if a.Hashtag == nil {
		return ""
	}
	return *a.Hashtag
}
