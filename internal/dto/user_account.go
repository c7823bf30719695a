package dto

import (
	"time"

	"project-board/internal/domain/entity"
)

// AuditDTO is the audit block shared by every DTO.
type AuditDTO struct {
	CreatedAt  time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	CreatedBy  string    `json:"createdBy" example:"heechan"`
	ModifiedAt time.Time `json:"modifiedAt" example:"2024-01-15T10:30:00Z"`
	ModifiedBy string    `json:"modifiedBy" example:"heechan"`
}

func auditFromEntity(a entity.Audit) AuditDTO {
	return AuditDTO{
		CreatedAt:  a.CreatedAt,
		CreatedBy:  a.CreatedBy,
		ModifiedAt: a.ModifiedAt,
		ModifiedBy: a.ModifiedBy,
	}
}

// UserAccountDTO is the public view of an account. The password hash is never projected.
type UserAccountDTO struct {
	ID       int64   `json:"id" example:"1"`
	UserID   string  `json:"userId" example:"heechan"`
	Email    string  `json:"email,omitempty" example:"hee@example.com"`
	Nickname string  `json:"nickname,omitempty" example:"hee"`
	Memo     *string `json:"memo,omitempty"`
	AuditDTO
}

// UserAccountFromEntity projects a persisted account.
func UserAccountFromEntity(u entity.UserAccount) UserAccountDTO {
	return UserAccountDTO{
		ID:       u.ID,
		UserID:   u.UserID,
		Email:    u.Email,
		Nickname: u.Nickname,
		Memo:     cloneString(u.Memo),
		AuditDTO: auditFromEntity(u.Audit),
	}
}

// ToEntity builds a transient account. passwordHash must already be hashed.
func (d UserAccountDTO) ToEntity(passwordHash string) entity.UserAccount {
	return entity.UserAccount{
		UserID:       d.UserID,
		PasswordHash: passwordHash,
		Email:        d.Email,
		Nickname:     d.Nickname,
		Memo:         cloneString(d.Memo),
	}
}

// DisplayName returns the nickname, falling back to the user id.
func (d UserAccountDTO) DisplayName() string {
	if d.Nickname != "" {
		return d.Nickname
	}
	return d.UserID
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
