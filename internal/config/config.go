package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/terraincognita07/fortuna/internal/generative"
	"github.com/terraincognita07/fortuna/internal/horoscope"
)

const minSecretKeyLength = 32

var (
	ErrSecretKeyMissing     = errors.New("SECRET_KEY is required")
	ErrSecretKeyTooShort    = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	ErrSecretKeyPlaceholder = errors.New("SECRET_KEY must not be a placeholder value")
)

var placeholderSecrets = []string{
	"change_me_in_production",
	"change-me",
	"changeme",
	"replace_with_a_long_random_secret",
	"secret",
}

// Config is read with envconfig. Nested fields use split_words instead of
// explicit names so DB_PATH never falls back to the bare PATH variable.
type Config struct {
	SecretKey    string `split_words:"true"`
	CookieSecure bool   `split_words:"true" default:"false"`

	Server    ServerConfig      `envconfig:"SERVER"`
	DB        DBConfig          `envconfig:"DB"`
	GenAI     generative.Config `envconfig:"GENAI"`
	Horoscope horoscope.Config  `envconfig:"HOROSCOPE"`
	Log       LogConfig         `envconfig:"LOG"`
	Admin     AdminConfig       `envconfig:"ADMIN"`
}

type ServerConfig struct {
	Port        string `default:"8080"`
	TemplateDir string `split_words:"true" default:"internal/templates"`
	StaticDir   string `split_words:"true" default:"web/static"`
}

type DBConfig struct {
	Path string `default:"data/fortuna.db"`
}

type LogConfig struct {
	Level  string `default:"info"`
	Format string `default:"json"`
}

// AdminConfig seeds an administrator account when all fields are present.
type AdminConfig struct {
	Name            string `default:"Admin User"`
	Username        string
	Email           string
	Password        string
	Birthday        string `default:"1990-01-01"`
	PersonalityType string `split_words:"true" default:"INTJ"`
}

func (admin AdminConfig) Complete() bool {
	return strings.TrimSpace(admin.Username) != "" &&
		strings.TrimSpace(admin.Email) != "" &&
		admin.Password != ""
}

// Load reads envFile when it exists and then the process environment.
// Variables already set in the environment take precedence over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.Horoscope.APIKey == "" {
		cfg.Horoscope.APIKey = os.Getenv("RAPIDAPI_KEY")
	}
	return cfg, nil
}

// ValidateSecretKey is required before serving requests; CLI maintenance
// commands do not sign tokens and skip it.
func (cfg *Config) ValidateSecretKey() error {
	secret := strings.TrimSpace(cfg.SecretKey)
	if secret == "" {
		return ErrSecretKeyMissing
	}
	lowered := strings.ToLower(secret)
	for _, placeholder := range placeholderSecrets {
		if lowered == placeholder {
			return ErrSecretKeyPlaceholder
		}
	}
	if utf8.RuneCountInString(secret) < minSecretKeyLength {
		return ErrSecretKeyTooShort
	}
	return nil
}
