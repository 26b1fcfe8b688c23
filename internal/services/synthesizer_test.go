package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	calls   int
	prompts []string
	system  string
}

func (stub *stubGenerator) Generate(_ context.Context, systemInstruction string, prompt string) (string, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.calls++
	stub.system = systemInstruction
	stub.prompts = append(stub.prompts, prompt)
	return stub.text, stub.err
}

func (stub *stubGenerator) callCount() int {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.calls
}

var sampleInputs = FortuneInputs{
	Horoscope:      "Plan finances carefully.",
	Strengths:      "Strategic, Logical, Efficient.",
	Weaknesses:     "Arrogant, Judgmental, Overly Analytical.",
	YearlyForecast: "Monkeys will find excitement and innovation.",
}

func TestFallbackNarrativeIsDeterministic(t *testing.T) {
	t.Parallel()

	want := "Daily fortune: Plan finances carefully.\n" +
		"Strengths to consider: Strategic, Logical, Efficient.\n" +
		"Weaknesses to watch: Arrogant, Judgmental, Overly Analytical.\n" +
		"Yearly guidance: Monkeys will find excitement and innovation."

	for attempt := 0; attempt < 3; attempt++ {
		if got := FallbackNarrative(sampleInputs); got != want {
			t.Fatalf("attempt %d: FallbackNarrative() = %q, want %q", attempt, got, want)
		}
	}
}

func TestSynthesizeWithoutGeneratorUsesFallback(t *testing.T) {
	t.Parallel()

	synth := NewFortuneSynthesizer(nil, time.Second, nil)
	if got := synth.Synthesize(context.Background(), sampleInputs); got != FallbackNarrative(sampleInputs) {
		t.Fatalf("expected fallback narrative, got %q", got)
	}
}

func TestSynthesizeTrimsGeneratedText(t *testing.T) {
	t.Parallel()

	generator := &stubGenerator{text: "  \n A bright day for careful budgets.\n\n"}
	synth := NewFortuneSynthesizer(generator, time.Second, nil)

	got := synth.Synthesize(context.Background(), sampleInputs)
	if got != "A bright day for careful budgets." {
		t.Fatalf("expected trimmed text, got %q", got)
	}
	if generator.system != fortuneSystemInstruction {
		t.Fatalf("unexpected system instruction %q", generator.system)
	}
	prompt := generator.prompts[0]
	for _, fragment := range []string{sampleInputs.Horoscope, sampleInputs.Strengths, sampleInputs.Weaknesses, sampleInputs.YearlyForecast, "under 70 words"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected prompt to contain %q, got %q", fragment, prompt)
		}
	}
}

func TestSynthesizeFallsBackOnceOnError(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	generator := &stubGenerator{err: errors.New("quota exceeded")}
	synth := NewFortuneSynthesizer(generator, time.Second, zap.New(core))

	got := synth.Synthesize(context.Background(), sampleInputs)
	if got != FallbackNarrative(sampleInputs) {
		t.Fatalf("expected fallback narrative, got %q", got)
	}
	if generator.callCount() != 1 {
		t.Fatalf("expected exactly one generator attempt, got %d", generator.callCount())
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}

func TestSynthesizeFallsBackOnBlankResponse(t *testing.T) {
	t.Parallel()

	synth := NewFortuneSynthesizer(&stubGenerator{text: "   "}, time.Second, nil)
	if got := synth.Synthesize(context.Background(), sampleInputs); got != FallbackNarrative(sampleInputs) {
		t.Fatalf("expected fallback narrative for blank response, got %q", got)
	}
}

type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, _ string, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func TestSynthesizeTimeoutFallsBack(t *testing.T) {
	t.Parallel()

	synth := NewFortuneSynthesizer(blockingGenerator{}, 10*time.Millisecond, nil)
	if got := synth.Synthesize(context.Background(), sampleInputs); got != FallbackNarrative(sampleInputs) {
		t.Fatalf("expected fallback narrative after timeout, got %q", got)
	}
}
