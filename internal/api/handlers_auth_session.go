package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fortuna/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registrationInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input", "")
	}

	handler.ensureDependencies()
	user, err := handler.accountService.Register(input.toService(), handler.now())
	if err != nil {
		status, message := accountErrorResponse(err, "failed to create account")
		if status == fiber.StatusInternalServerError {
			handler.logger.Error("register account", zap.Error(err))
		}
		return handler.respondAuthError(c, status, message, input.Username)
	}

	handler.logger.Info("account registered",
		zap.Uint("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	if acceptsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"ok":       true,
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		})
	}
	handler.setFlashCookie(c, FlashPayload{
		Success:  "Your account has been created! You are now able to log in.",
		Username: user.Username,
	})
	return redirectOrJSON(c, "/login")
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondAuthError(c, fiber.StatusBadRequest, "invalid input", "")
	}

	handler.ensureDependencies()
	user, err := handler.accountService.Authenticate(input.Username, input.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			handler.logger.Error("authenticate", zap.Error(err))
		}
		return handler.respondAuthError(c, fiber.StatusUnauthorized, "invalid username or password", input.Username)
	}

	if err := handler.setAuthCookie(c, &user); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{
			"ok":                   true,
			"must_change_password": user.MustChangePassword,
		})
	}
	return redirectOrJSON(c, postLoginRedirectPath(user.MustChangePassword))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	if acceptsJSON(c) || isHTMX(c) {
		return redirectOrJSON(c, "/login")
	}
	handler.setFlashCookie(c, FlashPayload{Success: "You have been logged out."})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

// respondAuthError sends browser form posts back to the page they came from
// with the error and the submitted username preserved in the flash cookie.
func (handler *Handler) respondAuthError(c *fiber.Ctx, status int, message string, username string) error {
	if !strings.HasPrefix(c.Path(), "/api/auth/") || acceptsJSON(c) || isHTMX(c) {
		return apiError(c, status, message)
	}

	handler.setFlashCookie(c, FlashPayload{AuthError: message, Username: username})
	if c.Path() == "/api/auth/register" {
		return c.Redirect("/signup", fiber.StatusSeeOther)
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}
