package seed

import (
	"fmt"

	"github.com/terraincognita07/fortuna/internal/models"
	"go.uber.org/zap"
)

type ReferenceWriter interface {
	ReplaceTraits(traits []models.PersonalityTrait) error
	ReplaceYearlyForecasts(forecasts []models.YearlyForecast) error
}

type Result struct {
	Traits    int
	Forecasts int
}

// Apply replaces the personality-trait and yearly-forecast tables with the
// catalog contents. Each table is replaced in its own transaction.
func Apply(writer ReferenceWriter, catalog Catalog, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	traits := catalog.Traits()
	if err := writer.ReplaceTraits(traits); err != nil {
		return Result{}, fmt.Errorf("seed personality traits: %w", err)
	}
	logger.Info("personality traits seeded", zap.Int("count", len(traits)))

	forecasts := catalog.Forecasts()
	if err := writer.ReplaceYearlyForecasts(forecasts); err != nil {
		return Result{Traits: len(traits)}, fmt.Errorf("seed yearly forecasts: %w", err)
	}
	logger.Info("yearly forecasts seeded",
		zap.Int("count", len(forecasts)),
		zap.Int("cycle_year", catalog.YearlyForecasts.CycleYear),
	)

	return Result{Traits: len(traits), Forecasts: len(forecasts)}, nil
}
