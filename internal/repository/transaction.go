package repository

import "context"

// Repositories groups the repositories bound to one unit of work.
type Repositories struct {
	Articles        ArticleRepository
	ArticleComments ArticleCommentRepository
	UserAccounts    UserAccountRepository
}

// TxManager runs fn inside a single transaction. The transaction commits when
// fn returns nil and rolls back otherwise. readOnly is passed to the store as a hint.
type TxManager interface {
	Do(ctx context.Context, readOnly bool, fn func(repos Repositories) error) error
}
