package entity

import (
	"fmt"
	"net/mail"
	"regexp"
	"unicode/utf8"
)

// Column limits shared by validation and the schema, in characters.
const (
	MaxTitleLength    = 255
	MaxContentLength  = 10000
	MaxHashtagLength  = 255
	MaxCommentLength  = 500
	MaxUserIDLength   = 50
	MaxEmailLength    = 100
	MaxNicknameLength = 100
)

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ValidateUserID checks that a login name is present, bounded and made of safe characters.
func ValidateUserID(userID string) error {
	if userID == "" {
		return &ValidationError{Field: "userId", Message: "user id is required"}
	}
	if utf8.RuneCountInString(userID) > MaxUserIDLength {
		return &ValidationError{
			Field:   "userId",
			Message: fmt.Sprintf("user id must not exceed %d characters", MaxUserIDLength),
		}
	}
	if !userIDPattern.MatchString(userID) {
		return &ValidationError{Field: "userId", Message: "user id may only contain letters, digits, '.', '_' and '-'"}
	}
	return nil
}

// ValidateEmail checks an email address. An empty address is allowed.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return &ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("email must not exceed %d characters", MaxEmailLength),
		}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "email is malformed"}
	}
	return nil
}
