package entity

import "unicode/utf8"

// UserAccount is the authoring identity. UserID is the login name and is unique.
type UserAccount struct {
	ID           int64
	UserID       string
	PasswordHash string
	Email        string
	Nickname     string
	Memo         *string
	Audit
}

// Validate checks the account fields required at registration.
func (u *UserAccount) Validate() error {
	if err := ValidateUserID(u.UserID); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return &ValidationError{Field: "password", Message: "password is required"}
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if utf8.RuneCountInString(u.Nickname) > MaxNicknameLength {
		return &ValidationError{Field: "nickname", Message: "nickname is too long"}
	}
	return nil
}

// DisplayName returns the nickname, or the user id when no nickname is set.
func (u *UserAccount) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.UserID
}
