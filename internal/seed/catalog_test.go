package seed

import (
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/fortuna/internal/models"
)

func TestDefaultCatalogIsComplete(t *testing.T) {
	t.Parallel()

	catalog, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if got := len(catalog.Traits()); got != 16 {
		t.Fatalf("expected 16 traits, got %d", got)
	}
	forecasts := catalog.Forecasts()
	if len(forecasts) != 12 {
		t.Fatalf("expected 12 forecasts, got %d", len(forecasts))
	}
	for _, forecast := range forecasts {
		if forecast.CycleYear != 2024 {
			t.Fatalf("expected cycle year 2024, got %d for %s", forecast.CycleYear, forecast.Sign)
		}
		if forecast.Forecast == "" {
			t.Fatalf("expected forecast text for %s", forecast.Sign)
		}
	}
}

func TestParseRejectsMissingEntries(t *testing.T) {
	t.Parallel()

	raw := `
personality_traits:
  - type: INTJ
    strengths: "Strategic."
    weaknesses: "Arrogant."
yearly_forecasts:
  cycle_year: 2024
  signs:
    - sign: Rat
      forecast: "Growth."
`
	_, err := Parse([]byte(raw))
	if !errors.Is(err, ErrIncompleteCatalog) {
		t.Fatalf("expected ErrIncompleteCatalog, got %v", err)
	}
	if !strings.Contains(err.Error(), "INTP") {
		t.Fatalf("expected missing type to be named, got %v", err)
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("personality_traits: [")); err == nil {
		t.Fatal("expected decode error")
	}
}

type recordingWriter struct {
	traits    []models.PersonalityTrait
	forecasts []models.YearlyForecast
	err       error
}

func (w *recordingWriter) ReplaceTraits(traits []models.PersonalityTrait) error {
	w.traits = traits
	return nil
}

func (w *recordingWriter) ReplaceYearlyForecasts(forecasts []models.YearlyForecast) error {
	if w.err != nil {
		return w.err
	}
	w.forecasts = forecasts
	return nil
}

func TestApplyWritesBothTables(t *testing.T) {
	t.Parallel()

	catalog, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	writer := &recordingWriter{}
	result, err := Apply(writer, catalog, nil)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if result.Traits != 16 || result.Forecasts != 12 {
		t.Fatalf("unexpected result %+v", result)
	}
	if writer.traits[0].Type != "INTJ" || writer.traits[0].Strengths != "Strategic, Logical, Efficient." {
		t.Fatalf("unexpected first trait %+v", writer.traits[0])
	}
}

func TestApplyReportsWriterError(t *testing.T) {
	t.Parallel()

	catalog, _ := Default()
	writer := &recordingWriter{err: errors.New("disk full")}
	if _, err := Apply(writer, catalog, nil); err == nil || !strings.Contains(err.Error(), "yearly forecasts") {
		t.Fatalf("expected wrapped forecast error, got %v", err)
	}
}
