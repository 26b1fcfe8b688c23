package services

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrInvalidName            = errors.New("name must be between 2 and 50 characters")
	ErrInvalidUsername        = errors.New("username must be 2-20 letters, digits, dots, dashes or underscores")
	ErrInvalidEmail           = errors.New("invalid email address")
	ErrInvalidBirthday        = errors.New("invalid birthday")
	ErrInvalidPersonalityType = errors.New("unknown personality type")
	ErrPasswordMismatch       = errors.New("passwords do not match")
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{2,20}$`)

// PersonalityTypes lists the sixteen accepted codes.
var PersonalityTypes = []string{
	"INTJ", "INTP", "ENTJ", "ENTP",
	"INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ",
	"ISTP", "ISFP", "ESTP", "ESFP",
}

type ProfileInput struct {
	Name            string
	Username        string
	Email           string
	Birthday        string
	PersonalityType string
}

type RegistrationInput struct {
	ProfileInput
	Password        string
	ConfirmPassword string
}

type normalizedProfile struct {
	Name            string
	Username        string
	Email           string
	Birthday        time.Time
	PersonalityType string
}

func NormalizeEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizePersonalityType(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", nil
	}
	for _, candidate := range PersonalityTypes {
		if candidate == code {
			return code, nil
		}
	}
	return "", ErrInvalidPersonalityType
}

// ParseBirthday accepts YYYY-MM-DD and rejects dates after now.
func ParseBirthday(raw string, now time.Time) (time.Time, error) {
	birthday, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidBirthday
	}
	if birthday.After(now.UTC()) || birthday.Year() < 1900 {
		return time.Time{}, ErrInvalidBirthday
	}
	return birthday, nil
}

func normalizeProfileInput(input ProfileInput, now time.Time) (normalizedProfile, error) {
	name := strings.TrimSpace(input.Name)
	if length := utf8.RuneCountInString(name); length < 2 || length > 50 {
		return normalizedProfile{}, ErrInvalidName
	}

	username := strings.TrimSpace(input.Username)
	if !usernamePattern.MatchString(username) {
		return normalizedProfile{}, ErrInvalidUsername
	}

	email := NormalizeEmail(input.Email)
	if email == "" {
		return normalizedProfile{}, ErrInvalidEmail
	}

	birthday, err := ParseBirthday(input.Birthday, now)
	if err != nil {
		return normalizedProfile{}, err
	}

	personalityType, err := NormalizePersonalityType(input.PersonalityType)
	if err != nil {
		return normalizedProfile{}, err
	}

	return normalizedProfile{
		Name:            name,
		Username:        username,
		Email:           email,
		Birthday:        birthday,
		PersonalityType: personalityType,
	}, nil
}
