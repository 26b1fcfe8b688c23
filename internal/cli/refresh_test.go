package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/services"
)

type fixedProvider struct {
	credential bool
}

func (provider fixedProvider) HasCredential() bool {
	return provider.credential
}

func (provider fixedProvider) FetchToday(ctx context.Context, sign string) (string, error) {
	if sign == "pisces" {
		return "", errors.New("horoscope provider error [status=500]")
	}
	return "A calm day for " + sign + ".", nil
}

func TestRunRefreshHoroscopes(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	var out bytes.Buffer
	if err := RunRefreshHoroscopes(context.Background(), database, fixedProvider{credential: true}, commandNow, nil, &out); err != nil {
		t.Fatalf("RunRefreshHoroscopes returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Stored 11 horoscopes for 2026-10-19") || !strings.Contains(out.String(), "Skipped: pisces") {
		t.Fatalf("unexpected output %q", out.String())
	}

	text, found, err := db.NewReferenceRepository(database).FindHoroscope("taurus", commandNow)
	if err != nil || !found || text != "A calm day for taurus." {
		t.Fatalf("expected stored taurus horoscope, got %q found=%v err=%v", text, found, err)
	}
}

func TestRunRefreshHoroscopesWithoutCredential(t *testing.T) {
	t.Parallel()

	database := openTestDatabase(t)
	err := RunRefreshHoroscopes(context.Background(), database, fixedProvider{}, commandNow, nil, &bytes.Buffer{})
	if !errors.Is(err, services.ErrHoroscopeCredentialMissing) {
		t.Fatalf("expected missing credential error, got %v", err)
	}
}
