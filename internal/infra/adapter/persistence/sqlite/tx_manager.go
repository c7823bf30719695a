package sqlite

import (
	"context"

	"project-board/internal/dbx"
	"project-board/internal/repository"
)

// Guard wraps a transaction handle, e.g. to route it through a circuit breaker.
type Guard func(tx dbx.DBTX) dbx.DBTX

// TxManager implements repository.TxManager on a SQLite database.
type TxManager struct {
	db    dbx.Beginner
	guard Guard
}

// NewTxManager returns a manager that begins transactions on db. guard may be nil.
func NewTxManager(db dbx.Beginner, guard Guard) *TxManager {
	return &TxManager{db: db, guard: guard}
}

// Do runs fn with repositories bound to one transaction. SQLite has no
// read-only transactions, so readOnly is ignored.
func (m *TxManager) Do(ctx context.Context, readOnly bool, fn func(repos repository.Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if m.guard != nil {
			tx = m.guard(tx)
		}
		return fn(NewRepositories(tx))
	})
}

// NewRepositories binds every SQLite repository to db.
func NewRepositories(db dbx.DBTX) repository.Repositories {
	return repository.Repositories{
		Articles:        NewArticleRepo(db),
		ArticleComments: NewArticleCommentRepo(db),
		UserAccounts:    NewUserAccountRepo(db),
	}
}
