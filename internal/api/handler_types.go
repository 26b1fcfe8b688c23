package api

import (
	"html/template"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	templates    map[string]*template.Template
	logger       *zap.Logger
	now          func() time.Time

	generator    services.TextGenerator
	genaiTimeout time.Duration
	horoscopes   services.HoroscopeProvider

	repositories   *db.Repositories
	accountService *services.AccountService
	fortuneService *services.FortuneService
	refreshService *services.HoroscopeRefreshService
}

// Options carries the collaborators constructed at startup. Generator and
// Horoscopes may be nil: the fortune falls back to its local template and the
// refresh reports a missing credential.
type Options struct {
	SecretKey    string
	TemplateDir  string
	CookieSecure bool
	Generator    services.TextGenerator
	GenAITimeout time.Duration
	Horoscopes   services.HoroscopeProvider
	Logger       *zap.Logger
	Now          func() time.Time
}

type FlashPayload struct {
	AuthError string `json:"auth_error,omitempty"`
	Error     string `json:"error,omitempty"`
	Success   string `json:"success,omitempty"`
	Username  string `json:"username,omitempty"`
}

const authTokenTTL = 7 * 24 * time.Hour

type authClaims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
