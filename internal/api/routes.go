package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	app.Get("/", handler.ShowIndex)
	app.Get("/login", handler.ShowLoginPage)
	app.Get("/signup", handler.ShowSignupPage)

	app.Get("/fortune", handler.AuthRequired, handler.ShowFortune)
	app.Get("/account", handler.AuthRequired, handler.ShowAccount)
	app.Post("/account", handler.AuthRequired, handler.UpdateAccount)
	app.Get(passwordChangePath, handler.AuthRequired, handler.ShowPasswordPage)
	app.Post(passwordChangePath, handler.AuthRequired, handler.ChangePassword)

	admin := app.Group("/admin", handler.AuthRequired, handler.AdminOnly)
	admin.Get("/horoscopes", handler.ShowAdminHoroscopes)
	admin.Post("/horoscopes", handler.RefreshHoroscopes)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	fortune := api.Group("/fortune", handler.AuthRequired)
	fortune.Get("/today", handler.FortuneToday)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminOnly)
	admin.Post("/horoscopes/refresh", handler.RefreshHoroscopes)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
