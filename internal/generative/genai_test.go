package generative

import (
	"context"
	"errors"
	"testing"
)

func TestNewGenAIGeneratorRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewGenAIGenerator(context.Background(), Config{APIKey: "   "})
	if !errors.Is(err, ErrAPIKeyRequired) {
		t.Fatalf("expected ErrAPIKeyRequired, got %v", err)
	}
}

func TestConfigConfigured(t *testing.T) {
	t.Parallel()

	if (Config{}).Configured() {
		t.Fatal("expected empty config to be unconfigured")
	}
	if !(Config{APIKey: "key"}).Configured() {
		t.Fatal("expected key to configure the generator")
	}
}

func TestNewGenAIGeneratorDefaultsModel(t *testing.T) {
	t.Parallel()

	generator, err := NewGenAIGenerator(context.Background(), Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewGenAIGenerator returned error: %v", err)
	}
	if generator.Model() != DefaultModel {
		t.Fatalf("expected default model %q, got %q", DefaultModel, generator.Model())
	}
}
