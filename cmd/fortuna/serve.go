package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/fortuna/internal/api"
	"github.com/terraincognita07/fortuna/internal/config"
	"github.com/terraincognita07/fortuna/internal/db"
	"github.com/terraincognita07/fortuna/internal/generative"
	"github.com/terraincognita07/fortuna/internal/horoscope"
	"github.com/terraincognita07/fortuna/internal/services"
	"go.uber.org/zap"
)

func newServeCommand(state *commandState) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(commandContext(cmd), state.cfg, state.logger)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.ValidateSecretKey(); err != nil {
		return err
	}

	database, err := db.OpenSQLite(cfg.DB.Path, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer closeDatabase(database)

	options, err := handlerOptions(ctx, cfg, logger)
	if err != nil {
		return err
	}
	handler, err := api.NewHandler(database, options)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	app := newFiberApp(cfg, handler)

	scheduler, err := services.NewHoroscopeScheduler(handler.HoroscopeRefresher(), cfg.Horoscope.RefreshSchedule, logger)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	sigCtx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Fortuna listening",
		zap.String("addr", "http://0.0.0.0:"+cfg.Server.Port),
		zap.String("db", cfg.DB.Path),
		zap.Bool("generator", options.Generator != nil),
		zap.Bool("horoscope_credential", cfg.Horoscope.APIKey != ""),
		zap.Bool("scheduled_refresh", scheduler.Enabled()),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// handlerOptions leaves Generator nil when no generative API key is set, so
// fortunes fall back to the assembled reference text.
func handlerOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (api.Options, error) {
	options := api.Options{
		SecretKey:    cfg.SecretKey,
		TemplateDir:  cfg.Server.TemplateDir,
		CookieSecure: cfg.CookieSecure,
		GenAITimeout: cfg.GenAI.Timeout,
		Horoscopes:   horoscope.NewClient(cfg.Horoscope, logger),
		Logger:       logger,
	}

	if !cfg.GenAI.Configured() {
		logger.Warn("generative API key is not configured; fortunes use the fallback text")
		return options, nil
	}
	generator, err := generative.NewGenAIGenerator(ctx, cfg.GenAI)
	if err != nil {
		return api.Options{}, fmt.Errorf("generative client init failed: %w", err)
	}
	logger.Info("generative client ready", zap.String("model", generator.Model()))
	options.Generator = generator
	return options, nil
}

func newFiberApp(cfg *config.Config, handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Fortuna",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(csrf.New(csrfMiddlewareConfig(cfg.CookieSecure)))

	app.Static("/static", cfg.Server.StaticDir)
	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

// csrfMiddlewareConfig exempts requests with a JSON body: browsers cannot send
// that content type cross-site without a CORS preflight.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "form:csrf_token",
		CookieName:     "fortuna_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
		Next: func(c *fiber.Ctx) bool {
			return c.Is("json")
		},
	}
}
