package account_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"project-board/internal/domain/entity"
	"project-board/internal/dto"
	"project-board/internal/pkg/security"
	"project-board/internal/repository"
	accountUC "project-board/internal/usecase/account"
)

type stubUsers struct {
	data     map[string]entity.UserAccount
	saveErr  error
	findErr  error
	nextID   int64
	saveSeen int
}

func (s *stubUsers) FindByUserID(_ context.Context, userID string) (*entity.UserAccount, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.data[userID]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *stubUsers) Save(_ context.Context, u *entity.UserAccount) error {
	s.saveSeen++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.nextID++
	u.ID = s.nextID
	s.data[u.UserID] = *u
	return nil
}

func (s *stubUsers) Count(context.Context) (int64, error) { return int64(len(s.data)), nil }

type stubTx struct{ repos repository.Repositories }

func (t *stubTx) Do(_ context.Context, _ bool, fn func(repository.Repositories) error) error {
	return fn(t.repos)
}

var now = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*accountUC.Service, *stubUsers) {
	t.Helper()
	hash, err := security.HashPassword("pw", bcrypt.MinCost)
	require.NoError(t, err)
	users := &stubUsers{data: map[string]entity.UserAccount{
		"heechan": {ID: 1, UserID: "heechan", PasswordHash: hash, Nickname: "hee"},
	}, nextID: 1}
	svc := &accountUC.Service{
		Tx:         &stubTx{repos: repository.Repositories{UserAccounts: users}},
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return now },
	}
	return svc, users
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.Authenticate(context.Background(), "heechan", "pw")
	require.NoError(t, err)
	assert.Equal(t, "heechan", got.UserID)
	assert.Equal(t, "hee", got.Nickname)
}

func TestService_Authenticate_Rejects(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name     string
		userID   string
		password string
	}{
		{name: "wrong password", userID: "heechan", password: "nope"},
		{name: "unknown user", userID: "ghost", password: "pw"},
		{name: "empty password", userID: "heechan", password: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(context.Background(), tt.userID, tt.password)
			assert.ErrorIs(t, err, accountUC.ErrInvalidCredentials)
		})
	}
}

func TestService_Authenticate_StoreError(t *testing.T) {
	svc, users := newService(t)
	users.findErr = errors.New("db down")

	_, err := svc.Authenticate(context.Background(), "heechan", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, accountUC.ErrInvalidCredentials)
}

func TestService_Register(t *testing.T) {
	svc, users := newService(t)

	got, err := svc.Register(context.Background(), "", dto.UserAccountDTO{
		UserID: "uno", Email: "uno@example.com", Nickname: "Uno",
	}, "secret")
	require.NoError(t, err)

	assert.NotZero(t, got.ID)
	assert.Equal(t, "uno", got.CreatedBy)
	assert.Equal(t, now, got.CreatedAt)

	stored := users.data["uno"]
	assert.NotEqual(t, "secret", stored.PasswordHash)
	assert.True(t, security.CheckPasswordHash("secret", stored.PasswordHash))

	_, err = svc.Authenticate(context.Background(), "uno", "secret")
	assert.NoError(t, err)
}

func TestService_Register_Taken(t *testing.T) {
	svc, users := newService(t)

	_, err := svc.Register(context.Background(), "admin", dto.UserAccountDTO{UserID: "heechan"}, "secret")
	assert.ErrorIs(t, err, accountUC.ErrUserIDTaken)
	assert.Zero(t, users.saveSeen)
}

func TestService_Register_ConflictFromStore(t *testing.T) {
	svc, users := newService(t)
	users.saveErr = fmt.Errorf("Save: %w", entity.ErrConflict)

	_, err := svc.Register(context.Background(), "admin", dto.UserAccountDTO{UserID: "racer"}, "secret")
	assert.ErrorIs(t, err, accountUC.ErrUserIDTaken)
}

func TestService_Register_Validation(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name      string
		in        dto.UserAccountDTO
		password  string
		wantField string
	}{
		{name: "bad user id", in: dto.UserAccountDTO{UserID: "has space"}, password: "pw", wantField: "userId"},
		{name: "bad email", in: dto.UserAccountDTO{UserID: "ok", Email: "nope"}, password: "pw", wantField: "email"},
		{name: "empty password", in: dto.UserAccountDTO{UserID: "ok"}, password: "", wantField: "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), "admin", tt.in, tt.password)
			ve, ok := entity.AsValidationError(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestService_GetUserAccountAndCount(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.GetUserAccount(context.Background(), "heechan")
	require.NoError(t, err)
	assert.Equal(t, "hee", got.Nickname)

	_, err = svc.GetUserAccount(context.Background(), "ghost")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
