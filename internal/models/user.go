package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (role Role) Valid() bool {
	return role == RoleUser || role == RoleAdmin
}

type User struct {
	ID                 uint       `gorm:"primaryKey"`
	Name               string     `gorm:"not null"`
	Username           string     `gorm:"uniqueIndex;not null"`
	Email              string     `gorm:"uniqueIndex;not null"`
	PasswordHash       string     `gorm:"not null"`
	Birthday           time.Time  `gorm:"not null"`
	PersonalityType    string     `gorm:"not null;default:''"`
	CyclicalSign       string     `gorm:"not null;default:''"`
	LastFortune        *string    `gorm:"column:last_fortune"`
	LastFortuneDate    *time.Time `gorm:"column:last_fortune_date"`
	Role               Role       `gorm:"not null;default:user"`
	MustChangePassword bool       `gorm:"not null;default:false"`
	CreatedAt          time.Time  `gorm:"not null"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

// IsAdmin reports whether the user may run administrative operations.
func (user *User) IsAdmin() bool {
	return user != nil && user.Role == RoleAdmin
}

// FortuneFor returns the cached narrative when it was synthesized on the same
// UTC calendar day as day.
func (user *User) FortuneFor(day time.Time) (string, bool) {
	if user == nil || user.LastFortune == nil || user.LastFortuneDate == nil {
		return "", false
	}
	if !SameUTCDay(*user.LastFortuneDate, day) {
		return "", false
	}
	return *user.LastFortune, true
}

// SetFortune updates both cache fields together.
func (user *User) SetFortune(narrative string, day time.Time) {
	stored := narrative
	date := UTCDay(day)
	user.LastFortune = &stored
	user.LastFortuneDate = &date
}

func UTCDay(value time.Time) time.Time {
	utc := value.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

func SameUTCDay(left time.Time, right time.Time) bool {
	return UTCDay(left).Equal(UTCDay(right))
}
