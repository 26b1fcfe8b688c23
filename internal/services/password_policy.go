package services

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var ErrWeakPassword = errors.New("password must be at least 8 characters long")

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

func ValidatePasswordStrength(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrWeakPassword
	}
	if utf8.RuneCountInString(password) < 8 || len(password) > maxPasswordBytes {
		return ErrWeakPassword
	}
	return nil
}
