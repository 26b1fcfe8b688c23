package generative

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var ErrAPIKeyRequired = errors.New("genai API key is required")

type Config struct {
	APIKey  string        `split_words:"true"`
	Model   string        `default:"gemini-2.0-flash"`
	Timeout time.Duration `default:"20s"`
}

// Configured reports whether a key is present; without one the fortune
// synthesizer runs on its local fallback only.
func (cfg Config) Configured() bool {
	return strings.TrimSpace(cfg.APIKey) != ""
}

// GenAIGenerator produces text through Google's Gemini API.
type GenAIGenerator struct {
	client *genai.Client
	model  string
}

func NewGenAIGenerator(ctx context.Context, cfg Config) (*GenAIGenerator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIGenerator{client: client, model: model}, nil
}

func (g *GenAIGenerator) Model() string {
	return g.model
}

// Generate sends one user prompt under the given system instruction. An empty
// response is reported as an error.
func (g *GenAIGenerator) Generate(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("GenAI returned no text")
	}
	return text, nil
}
