package repository

import (
	"context"

	"project-board/internal/domain/entity"
)

type UserAccountRepository interface {
	FindByUserID(ctx context.Context, userID string) (*entity.UserAccount, error)
	// Save inserts the account when ID is zero and updates it otherwise.
	// Inserting a taken user id fails with entity.ErrConflict.
	Save(ctx context.Context, account *entity.UserAccount) error
	Count(ctx context.Context) (int64, error)
}
