package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"project-board/internal/dbx"
	"project-board/internal/domain/entity"
	"project-board/internal/repository"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type UserAccountRepo struct {
	db dbx.DBTX
}

func NewUserAccountRepo(db dbx.DBTX) repository.UserAccountRepository {
	return &UserAccountRepo{db: db}
}

func (repo *UserAccountRepo) FindByUserID(ctx context.Context, userID string) (*entity.UserAccount, error) {
	const query = `
SELECT id, user_id, user_password, email, nickname, memo,
       created_at, created_by, modified_at, modified_by
FROM user_accounts
WHERE user_id = $1
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
		return nil, fmt.Errorf("FindByUserID: %w", err)
	}
	acc.apply(&u)
	return &u, nil
}

func (repo *UserAccountRepo) Save(ctx context.Context, account *entity.UserAccount) error {
	if account.ID == 0 {
		const query = `
INSERT INTO user_accounts (user_id, user_password, email, nickname, memo, created_at, created_by, modified_at, modified_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`
		err := repo.db.QueryRowContext(ctx, query,
			account.UserID,
			account.PasswordHash,
			emptyToNull(account.Email),
			emptyToNull(account.Nickname),
			toNullString(account.Memo),
			account.CreatedAt,
			account.CreatedBy,
			account.ModifiedAt,
			account.ModifiedBy,
		).Scan(&account.ID)
		if isUniqueViolation(err) {
			return fmt.Errorf("Save: user id %q: %w", account.UserID, entity.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("Save: insert: %w", err)
		}
		return nil
	}

	const query = `
UPDATE user_accounts
SET user_password = $1, email = $2, nickname = $3, memo = $4, modified_at = $5, modified_by = $6
WHERE id = $7`
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
	const query = `SELECT COUNT(*) FROM user_accounts`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
