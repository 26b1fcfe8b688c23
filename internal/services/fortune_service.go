package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/fortuna/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	MissingHoroscopeText  = "Unable to fetch your fortune. Please try again later."
	MissingStrengthsText  = "No strengths available."
	MissingWeaknessesText = "No weaknesses available."
	MissingForecastText   = "No fortune available."
)

var ErrFortuneUserRequired = errors.New("fortune user is required")

type ReferenceStore interface {
	FindHoroscope(sign string, day time.Time) (string, bool, error)
	FindTrait(code string) (models.PersonalityTrait, bool, error)
	FindYearlyForecast(sign string) (string, bool, error)
}

type FortuneCacheRepository interface {
	SaveFortune(userID uint, narrative string, day time.Time) error
}

type FortuneReading struct {
	Narrative      string
	SolarSign      string
	CyclicalSign   string
	YearlyForecast string
	Day            time.Time
	Cached         bool
}

type FortuneService struct {
	references  ReferenceStore
	users       FortuneCacheRepository
	synthesizer *FortuneSynthesizer
	logger      *zap.Logger
	inflight    singleflight.Group
}

func NewFortuneService(references ReferenceStore, users FortuneCacheRepository, synthesizer *FortuneSynthesizer, logger *zap.Logger) *FortuneService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if synthesizer == nil {
		synthesizer = NewFortuneSynthesizer(nil, 0, logger)
	}
	return &FortuneService{
		references:  references,
		users:       users,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// Today returns the user's narrative for the UTC day containing now. A
// narrative already synthesized that day is returned verbatim; otherwise a new
// one is synthesized, persisted and written back into user.
func (service *FortuneService) Today(ctx context.Context, user *models.User, now time.Time) (FortuneReading, error) {
	if user == nil {
		return FortuneReading{}, ErrFortuneUserRequired
	}

	day := models.UTCDay(now)
	reading := FortuneReading{
		SolarSign:    SolarZodiac(user.Birthday.Day(), int(user.Birthday.Month())),
		CyclicalSign: user.CyclicalSign,
		Day:          day,
	}
	if reading.CyclicalSign == "" {
		reading.CyclicalSign = CyclicalYearSign(user.Birthday.Year())
	}
	reading.YearlyForecast = service.yearlyForecast(reading.CyclicalSign)

	if narrative, ok := user.FortuneFor(day); ok {
		reading.Narrative = narrative
		reading.Cached = true
		return reading, nil
	}

	key := fmt.Sprintf("%d:%s", user.ID, day.Format("2006-01-02"))
	result, err, _ := service.inflight.Do(key, func() (any, error) {
		inputs := FortuneInputs{
			Horoscope:      service.horoscope(reading.SolarSign, day),
			YearlyForecast: reading.YearlyForecast,
		}
		inputs.Strengths, inputs.Weaknesses = service.trait(user.PersonalityType)

		narrative := service.synthesizer.Synthesize(ctx, inputs)
		if err := service.users.SaveFortune(user.ID, narrative, day); err != nil {
			return "", fmt.Errorf("save fortune: %w", err)
		}
		return narrative, nil
	})
	if err != nil {
		return FortuneReading{}, err
	}

	reading.Narrative = result.(string)
	user.SetFortune(reading.Narrative, day)
	return reading, nil
}

func (service *FortuneService) horoscope(sign string, day time.Time) string {
	text, found, err := service.references.FindHoroscope(sign, day)
	if err != nil {
		service.logger.Warn("horoscope lookup failed", zap.String("sign", sign), zap.Error(err))
		return MissingHoroscopeText
	}
	if !found {
		return MissingHoroscopeText
	}
	return text
}

func (service *FortuneService) trait(code string) (string, string) {
	if code == "" {
		return MissingStrengthsText, MissingWeaknessesText
	}
	trait, found, err := service.references.FindTrait(code)
	if err != nil {
		service.logger.Warn("personality trait lookup failed", zap.String("type", code), zap.Error(err))
		return MissingStrengthsText, MissingWeaknessesText
	}
	if !found {
		return MissingStrengthsText, MissingWeaknessesText
	}
	return trait.Strengths, trait.Weaknesses
}

func (service *FortuneService) yearlyForecast(sign string) string {
	text, found, err := service.references.FindYearlyForecast(sign)
	if err != nil {
		service.logger.Warn("yearly forecast lookup failed", zap.String("sign", sign), zap.Error(err))
		return MissingForecastText
	}
	if !found {
		return MissingForecastText
	}
	return text
}
