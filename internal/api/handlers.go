package api

import (
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var templatePages = []string{
	"index",
	"login",
	"signup",
	"fortune",
	"account",
	"password",
	"admin_horoscopes",
	"not_found",
}

func NewHandler(database *gorm.DB, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(options.SecretKey) == "" {
		return nil, errors.New("secret key is required")
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}

	templates := make(map[string]*template.Template, len(templatePages))
	for _, page := range templatePages {
		parsed, err := template.New("base").Funcs(newTemplateFuncMap()).ParseFiles(
			filepath.Join(options.TemplateDir, "base.html"),
			filepath.Join(options.TemplateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(options.SecretKey),
		cookieSecure: options.CookieSecure,
		templates:    templates,
		logger:       logger,
		now:          now,
		generator:    options.Generator,
		genaiTimeout: options.GenAITimeout,
		horoscopes:   options.Horoscopes,
	}
	return handler.withDependencies(database), nil
}

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(value time.Time, layout string) string {
			if value.IsZero() {
				return ""
			}
			return value.Format(layout)
		},
		"title": func(value string) string {
			if value == "" {
				return ""
			}
			return strings.ToUpper(value[:1]) + value[1:]
		},
		"isActiveRoute": func(currentPath string, route string) bool {
			path := strings.TrimSpace(currentPath)
			if route == "/" {
				return path == "/" || path == ""
			}
			return path == route || strings.HasPrefix(path, route+"/") || strings.HasPrefix(path, route+"?")
		},
	}
}
