package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"project-board/internal/dbx"
	"project-board/internal/domain/entity"
	"project-board/internal/repository"
)

// UserAccountRepo implements repository.UserAccountRepository using SQLite.
type UserAccountRepo struct {
	db dbx.DBTX
}

// NewUserAccountRepo creates a new SQLite-backed user account repository.
func NewUserAccountRepo(db dbx.DBTX) repository.UserAccountRepository {
	return &UserAccountRepo{db: db}
}

func (repo *UserAccountRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserAccount, error) {
	const query = `
SELECT id, user_id, user_password, email, nickname, memo,
       created_at, created_by, modified_at, modified_by
FROM user_accounts
WHERE user_id = ?
LIMIT 1`
	var (
		u   entity.UserAccount
		acc accountDest
	)
	err := repo.db.QueryRowContext(ctx, query, userID).Scan(
		&u.ID, &u.UserID, &u.PasswordHash, &acc.email, &acc.nickname, &acc.memo,
		&u.CreatedAt, &u.CreatedBy, &u.ModifiedAt, &u.ModifiedBy,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByUserID: QueryRowContext: %w", err)
	}
	acc.apply(&u)
	return &u, nil
}

func (repo *UserAccountRepo) Save(ctx context.Context, account *entity.UserAccount) error {
	if account.ID == 0 {
		const query = `
INSERT INTO user_accounts (user_id, user_password, email, nickname, memo, created_at, created_by, modified_at, modified_by)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		res, err := repo.db.ExecContext(ctx, query,
			account.UserID,
			account.PasswordHash,
			emptyToNull(account.Email),
			emptyToNull(account.Nickname),
			toNullString(account.Memo),
			account.CreatedAt,
			account.CreatedBy,
			account.ModifiedAt,
			account.ModifiedBy,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("Save: user id %q: %w", account.UserID, entity.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("Save: insert: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Save: LastInsertId: %w", err)
		}
		account.ID = id
		return nil
	}

	const query = `
UPDATE user_accounts
SET user_password = ?, email = ?, nickname = ?, memo = ?, modified_at = ?, modified_by = ?
WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query,
		account.PasswordHash,
		emptyToNull(account.Email),
		emptyToNull(account.Nickname),
		toNullString(account.Memo),
		account.ModifiedAt,
		account.ModifiedBy,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("Save: update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Save: update account %d: %w", account.ID, entity.ErrNotFound)
	}
	return nil
}

func (repo *UserAccountRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_accounts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

// isUniqueViolation matches the message both SQLite drivers report.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
