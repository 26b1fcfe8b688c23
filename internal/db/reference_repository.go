package db

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/fortuna/internal/models"
	"gorm.io/gorm"
)

type ReferenceRepository struct {
	database *gorm.DB
}

func NewReferenceRepository(database *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{database: database}
}

// FindHoroscope returns the most recently inserted entry for sign on the UTC
// day containing day.
func (repo *ReferenceRepository) FindHoroscope(sign string, day time.Time) (string, bool, error) {
	dayStart := models.UTCDay(day)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var entry models.HoroscopeEntry
	err := repo.database.
		Where("sign = ? AND date >= ? AND date < ?", strings.ToLower(sign), dayStart, dayEnd).
		Order("id DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Horoscope, true, nil
}

func (repo *ReferenceRepository) FindTrait(code string) (models.PersonalityTrait, bool, error) {
	var trait models.PersonalityTrait
	err := repo.database.Where("type = ?", strings.ToUpper(strings.TrimSpace(code))).First(&trait).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.PersonalityTrait{}, false, nil
	}
	if err != nil {
		return models.PersonalityTrait{}, false, err
	}
	return trait, true, nil
}

func (repo *ReferenceRepository) FindYearlyForecast(sign string) (string, bool, error) {
	var forecast models.YearlyForecast
	err := repo.database.Where("sign = ?", strings.TrimSpace(sign)).First(&forecast).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return forecast.Forecast, true, nil
}

// InsertHoroscopes appends the whole batch in one transaction.
func (repo *ReferenceRepository) InsertHoroscopes(entries []models.HoroscopeEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for index := range entries {
			if err := tx.Create(&entries[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *ReferenceRepository) CountHoroscopes(day time.Time) (int64, error) {
	dayStart := models.UTCDay(day)
	var count int64
	err := repo.database.Model(&models.HoroscopeEntry{}).
		Where("date >= ? AND date < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&count).Error
	return count, err
}

// ReplaceTraits clears the table and loads traits atomically.
func (repo *ReferenceRepository) ReplaceTraits(traits []models.PersonalityTrait) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.PersonalityTrait{}).Error; err != nil {
			return err
		}
		for index := range traits {
			if err := tx.Create(&traits[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *ReferenceRepository) ReplaceYearlyForecasts(forecasts []models.YearlyForecast) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.YearlyForecast{}).Error; err != nil {
			return err
		}
		for index := range forecasts {
			if err := tx.Create(&forecasts[index]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
