// Package comment provides use cases for comments attached to articles.
package comment

import (
	"errors"
	"fmt"

	"project-board/internal/domain/entity"
)

// Sentinel errors for comment use case operations.
var (
	// ErrArticleNotFound indicates that the commented article does not exist.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidOwner indicates that the comment author's account does not exist.
	ErrInvalidOwner = fmt.Errorf("comment author not found: %w", entity.ErrNotFound)

	// ErrEmptyContent indicates a blank comment body.
	ErrEmptyContent = errors.New("comment content is empty")
)
