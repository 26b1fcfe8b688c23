package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/fortuna/internal/models"
	"github.com/terraincognita07/fortuna/internal/services"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var ErrIncompleteCatalog = errors.New("seed catalog is incomplete")

type TraitEntry struct {
	Type       string `yaml:"type"`
	Strengths  string `yaml:"strengths"`
	Weaknesses string `yaml:"weaknesses"`
}

type ForecastEntry struct {
	Sign     string `yaml:"sign"`
	Forecast string `yaml:"forecast"`
}

type ForecastSet struct {
	CycleYear int             `yaml:"cycle_year"`
	Signs     []ForecastEntry `yaml:"signs"`
}

type Catalog struct {
	PersonalityTraits []TraitEntry `yaml:"personality_traits"`
	YearlyForecasts   ForecastSet  `yaml:"yearly_forecasts"`
}

// Default returns the catalog compiled into the binary.
func Default() (Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a YAML catalog and checks that every personality type and
// every cyclical sign appears exactly once.
func Parse(raw []byte) (Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return Catalog{}, fmt.Errorf("decode seed catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return Catalog{}, err
	}
	return catalog, nil
}

func (catalog Catalog) Validate() error {
	traits := make(map[string]bool, len(catalog.PersonalityTraits))
	for _, entry := range catalog.PersonalityTraits {
		code, err := services.NormalizePersonalityType(entry.Type)
		if err != nil || code == "" {
			return fmt.Errorf("%w: unknown personality type %q", ErrIncompleteCatalog, entry.Type)
		}
		if traits[code] {
			return fmt.Errorf("%w: duplicate personality type %s", ErrIncompleteCatalog, code)
		}
		traits[code] = true
	}
	for _, code := range services.PersonalityTypes {
		if !traits[code] {
			return fmt.Errorf("%w: missing personality type %s", ErrIncompleteCatalog, code)
		}
	}

	signs := make(map[string]bool, len(catalog.YearlyForecasts.Signs))
	for _, entry := range catalog.YearlyForecasts.Signs {
		signs[strings.TrimSpace(entry.Sign)] = true
	}
	for _, sign := range services.CyclicalSigns {
		if !signs[sign] {
			return fmt.Errorf("%w: missing yearly forecast for %s", ErrIncompleteCatalog, sign)
		}
	}
	if len(signs) != len(services.CyclicalSigns) {
		return fmt.Errorf("%w: unexpected yearly forecast signs", ErrIncompleteCatalog)
	}
	return nil
}

func (catalog Catalog) Traits() []models.PersonalityTrait {
	traits := make([]models.PersonalityTrait, 0, len(catalog.PersonalityTraits))
	for _, entry := range catalog.PersonalityTraits {
		traits = append(traits, models.PersonalityTrait{
			Type:       strings.ToUpper(strings.TrimSpace(entry.Type)),
			Strengths:  strings.TrimSpace(entry.Strengths),
			Weaknesses: strings.TrimSpace(entry.Weaknesses),
		})
	}
	return traits
}

func (catalog Catalog) Forecasts() []models.YearlyForecast {
	forecasts := make([]models.YearlyForecast, 0, len(catalog.YearlyForecasts.Signs))
	for _, entry := range catalog.YearlyForecasts.Signs {
		forecasts = append(forecasts, models.YearlyForecast{
			Sign:      strings.TrimSpace(entry.Sign),
			CycleYear: catalog.YearlyForecasts.CycleYear,
			Forecast:  strings.TrimSpace(entry.Forecast),
		})
	}
	return forecasts
}
