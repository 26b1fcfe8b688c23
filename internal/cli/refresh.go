package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func RunRefreshHoroscopes(ctx context.Context, database *gorm.DB, provider services.HoroscopeProvider, now time.Time, logger *zap.Logger, out io.Writer) error {
	refresher := services.NewHoroscopeRefreshService(provider, db.NewReferenceRepository(database), logger)
	result, err := refresher.Refresh(ctx, now)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Stored %d horoscopes for %s\n", result.Inserted, result.Day.Format("2006-01-02"))
	if len(result.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped: %s\n", strings.Join(result.Skipped, ", "))
	}
	return nil
}
