package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fortuna/internal/services"
)

func (handler *Handler) ShowIndex(c *fiber.Ctx) error {
	if user := handler.optionalAuthenticatedUser(c); user != nil {
		c.Locals(contextUserKey, user)
	}
	return handler.render(c, "index", fiber.Map{
		"Title": "Fortuna",
	})
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	if redirected, err := handler.redirectAuthenticatedUserIfPresent(c); redirected || err != nil {
		return err
	}
	return handler.render(c, "login", fiber.Map{
		"Title": "Fortuna | Log In",
	})
}

func (handler *Handler) ShowSignupPage(c *fiber.Ctx) error {
	if redirected, err := handler.redirectAuthenticatedUserIfPresent(c); redirected || err != nil {
		return err
	}
	handler.ensureDependencies()
	needsSetup, err := handler.accountService.RequiresInitialSetup()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("failed to load setup state")
	}
	return handler.render(c, "signup", fiber.Map{
		"Title":            "Fortuna | Sign Up",
		"FirstAccount":     needsSetup,
		"PersonalityTypes": services.PersonalityTypes,
	})
}

func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	handler.ensureDependencies()
	needsSetup, err := handler.accountService.RequiresInitialSetup()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load setup state")
	}
	return c.JSON(fiber.Map{"needs_setup": needsSetup})
}

func (handler *Handler) redirectAuthenticatedUserIfPresent(c *fiber.Ctx) (bool, error) {
	user := handler.optionalAuthenticatedUser(c)
	if user == nil {
		return false, nil
	}
	return true, c.Redirect(postLoginRedirectPath(user.MustChangePassword), fiber.StatusSeeOther)
}

func postLoginRedirectPath(mustChangePassword bool) string {
	if mustChangePassword {
		return passwordChangePath
	}
	return "/fortune"
}
