package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/pkg/security"
	"project-board/internal/repository"
)

// Service authenticates and registers user accounts.
type Service struct {
	Tx repository.TxManager
	// BcryptCost is the hashing cost for new passwords. Zero means bcrypt.DefaultCost.
	BcryptCost int
	Now        func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Authenticate checks a user id and password and returns the account.
func (s *Service) Authenticate(ctx context.Context, userID, password string) (dto.UserAccountDTO, error) {
	var found *entity.UserAccount
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		found, err = repos.UserAccounts.FindByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return dto.UserAccountDTO{}, fmt.Errorf("authenticate: %w", err)
	}
	if found == nil {
		security.BurnCompare(password)
		return dto.UserAccountDTO{}, ErrInvalidCredentials
	}
	if !security.CheckPasswordHash(password, found.PasswordHash) {
		return dto.UserAccountDTO{}, ErrInvalidCredentials
	}
	return dto.UserAccountFromEntity(*found), nil
}

// GetUserAccount returns an account by user id, or entity.ErrNotFound.
func (s *Service) GetUserAccount(ctx context.Context, userID string) (dto.UserAccountDTO, error) {
	var found *entity.UserAccount
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		found, err = repos.UserAccounts.FindByUserID(ctx, userID)
		return err
	})
	if err != nil {
		return dto.UserAccountDTO{}, fmt.Errorf("get user account: %w", err)
	}
	if found == nil {
		return dto.UserAccountDTO{}, fmt.Errorf("get user account %q: %w", userID, entity.ErrNotFound)
	}
	return dto.UserAccountFromEntity(*found), nil
}

// Register creates an account with a hashed password.
func (s *Service) Register(ctx context.Context, actor string, d dto.UserAccountDTO, password string) (dto.UserAccountDTO, error) {
	cost := s.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := security.HashPassword(password, cost)
	if err != nil {
		return dto.UserAccountDTO{}, &entity.ValidationError{Field: "password", Message: err.Error()}
	}

	account := d.ToEntity(hash)
	if err := account.Validate(); err != nil {
		return dto.UserAccountDTO{}, err
	}
	if actor == "" {
		actor = account.UserID
	}
	account.Stamp(actor, s.now())

	err = s.Tx.Do(ctx, false, func(repos repository.Repositories) error {
		existing, err := repos.UserAccounts.FindByUserID(ctx, account.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrUserIDTaken
		}
		return repos.UserAccounts.Save(ctx, &account)
	})
	if errors.Is(err, entity.ErrConflict) {
		err = ErrUserIDTaken
	}
	if err != nil {
		return dto.UserAccountDTO{}, fmt.Errorf("register %q: %w", account.UserID, err)
	}
	return dto.UserAccountFromEntity(account), nil
}

// Count returns the number of registered accounts.
func (s *Service) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.Tx.Do(ctx, true, func(repos repository.Repositories) error {
		var err error
		n, err = repos.UserAccounts.Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("count user accounts: %w", err)
	}
	return n, nil
}
