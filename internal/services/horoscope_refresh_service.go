package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/terraincognita07/fortuna/internal/models"
	"go.uber.org/zap"
)

var ErrHoroscopeCredentialMissing = errors.New("horoscope provider credential is not configured")

// HoroscopeProvider fetches today's horoscope for one solar sign.
type HoroscopeProvider interface {
	HasCredential() bool
	FetchToday(ctx context.Context, sign string) (string, error)
}

type HoroscopeWriter interface {
	InsertHoroscopes(entries []models.HoroscopeEntry) error
}

type HoroscopeRefreshResult struct {
	Day      time.Time
	Inserted int
	Skipped  []string
}

type HoroscopeRefreshService struct {
	provider HoroscopeProvider
	writer   HoroscopeWriter
	logger   *zap.Logger
	running  sync.Mutex
}

func NewHoroscopeRefreshService(provider HoroscopeProvider, writer HoroscopeWriter, logger *zap.Logger) *HoroscopeRefreshService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HoroscopeRefreshService{provider: provider, writer: writer, logger: logger}
}

// Refresh fetches every solar sign in turn and stores the successful results
// in one transaction. A failing sign is logged and skipped.
func (service *HoroscopeRefreshService) Refresh(ctx context.Context, now time.Time) (HoroscopeRefreshResult, error) {
	if service.provider == nil || !service.provider.HasCredential() {
		return HoroscopeRefreshResult{}, ErrHoroscopeCredentialMissing
	}

	service.running.Lock()
	defer service.running.Unlock()

	day := models.UTCDay(now)
	result := HoroscopeRefreshResult{Day: day, Skipped: []string{}}
	entries := make([]models.HoroscopeEntry, 0, len(SolarSigns))
	for _, sign := range SolarSigns {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		text, err := service.provider.FetchToday(ctx, sign)
		if err != nil {
			service.logger.Warn("skipping horoscope sign", zap.String("sign", sign), zap.Error(err))
			result.Skipped = append(result.Skipped, sign)
			continue
		}
		entries = append(entries, models.HoroscopeEntry{
			Sign:      sign,
			Date:      day,
			Horoscope: text,
			CreatedAt: now.UTC(),
		})
	}

	if err := service.writer.InsertHoroscopes(entries); err != nil {
		return result, fmt.Errorf("store horoscopes: %w", err)
	}
	result.Inserted = len(entries)

	service.logger.Info("horoscopes refreshed",
		zap.Time("day", day),
		zap.Int("inserted", result.Inserted),
		zap.Strings("skipped", result.Skipped),
	)
	return result, nil
}
