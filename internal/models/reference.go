package models

import "time"

type HoroscopeEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Sign      string    `gorm:"not null;index:idx_horoscope_sign_date"`
	Date      time.Time `gorm:"not null;index:idx_horoscope_sign_date"`
	Horoscope string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type PersonalityTrait struct {
	ID         uint   `gorm:"primaryKey"`
	Type       string `gorm:"uniqueIndex;not null"`
	Strengths  string `gorm:"not null"`
	Weaknesses string `gorm:"not null"`
}

type YearlyForecast struct {
	ID        uint   `gorm:"primaryKey"`
	Sign      string `gorm:"uniqueIndex;not null"`
	CycleYear int    `gorm:"not null"`
	Forecast  string `gorm:"not null"`
}
