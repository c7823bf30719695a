// Package article provides use cases for managing articles: reading an
// article with its comments, field search, hashtag lookup, and owner-checked
// create, update and delete.
package article

import (
	"errors"
	"fmt"

	"project-board/internal/domain/entity"
)

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	// Returned errors wrap it together with the article id.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidOwner indicates that the acting user account does not exist.
	ErrInvalidOwner = fmt.Errorf("article owner not found: %w", entity.ErrNotFound)

	// ErrInvalidArticleID indicates an id that no article can have.
	ErrInvalidArticleID = errors.New("invalid article ID")
)

func articleNotFound(id int64) error {
	return fmt.Errorf("%w - articleId: %d", ErrArticleNotFound, id)
}

func invalidOwner(userID string) error {
	return fmt.Errorf("%w - userId: %s", ErrInvalidOwner, userID)
}
