package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const fortuneSystemInstruction = "You are an AI that generates unique daily fortunes for users."

var errEmptyGeneration = errors.New("generative service returned empty text")

// TextGenerator is a single blocking request to a generative text service.
type TextGenerator interface {
	Generate(ctx context.Context, systemInstruction string, prompt string) (string, error)
}

type FortuneInputs struct {
	Horoscope      string
	Strengths      string
	Weaknesses     string
	YearlyForecast string
}

type FortuneSynthesizer struct {
	generator TextGenerator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewFortuneSynthesizer accepts a nil generator, in which case every call
// returns the fallback narrative.
func NewFortuneSynthesizer(generator TextGenerator, timeout time.Duration, logger *zap.Logger) *FortuneSynthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FortuneSynthesizer{generator: generator, timeout: timeout, logger: logger}
}

func (synth *FortuneSynthesizer) Synthesize(ctx context.Context, inputs FortuneInputs) string {
	if synth.generator == nil {
		return FallbackNarrative(inputs)
	}

	callCtx := ctx
	if synth.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, synth.timeout)
		defer cancel()
	}

	generated, err := synth.generator.Generate(callCtx, fortuneSystemInstruction, FortunePrompt(inputs))
	if err == nil {
		generated = strings.TrimSpace(generated)
		if generated == "" {
			err = errEmptyGeneration
		}
	}
	if err != nil {
		synth.logger.Warn("fortune generation failed, using fallback narrative", zap.Error(err))
		return FallbackNarrative(inputs)
	}
	return generated
}

func FortunePrompt(inputs FortuneInputs) string {
	return fmt.Sprintf(`Astrological Fortune: %s
Personality Strengths: %s
Personality Weaknesses: %s
Yearly Zodiac Fortune: %s

Generate a unique daily fortune for the user, using mainly the daily astrological fortune, but incorporate some of the other factors, and keep it under 70 words.`,
		inputs.Horoscope, inputs.Strengths, inputs.Weaknesses, inputs.YearlyForecast)
}

func FallbackNarrative(inputs FortuneInputs) string {
	var builder strings.Builder
	builder.WriteString("Daily fortune: ")
	builder.WriteString(inputs.Horoscope)
	builder.WriteString("\nStrengths to consider: ")
	builder.WriteString(inputs.Strengths)
	builder.WriteString("\nWeaknesses to watch: ")
	builder.WriteString(inputs.Weaknesses)
	builder.WriteString("\nYearly guidance: ")
	builder.WriteString(inputs.YearlyForecast)
	return builder.String()
}
