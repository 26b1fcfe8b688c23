package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fortuna/internal/models"
)

const (
	authCookieName  = "fortuna_auth"
	flashCookieName = "fortuna_flash"
	contextUserKey  = "current_user"

	passwordChangePath = "/account/password"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		if isAPIPath(c.Path()) {
			return apiError(c, fiber.StatusUnauthorized, "unauthorized")
		}
		handler.setFlashCookie(c, FlashPayload{Error: "Please log in to access this page."})
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	c.Locals(contextUserKey, user)
	if user.MustChangePassword && !allowedDuringPasswordChange(c.Path()) {
		if isAPIPath(c.Path()) {
			return apiError(c, fiber.StatusForbidden, "password change required")
		}
		return c.Redirect(passwordChangePath, fiber.StatusSeeOther)
	}
	return c.Next()
}

func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !user.IsAdmin() {
		if isAPIPath(c.Path()) || acceptsJSON(c) {
			return apiError(c, fiber.StatusForbidden, "admin access required")
		}
		handler.setFlashCookie(c, FlashPayload{Error: "You do not have permission to access this page."})
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return c.Next()
}

func allowedDuringPasswordChange(path string) bool {
	cleanPath := strings.TrimSpace(path)
	return cleanPath == passwordChangePath || cleanPath == "/api/auth/logout"
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}
