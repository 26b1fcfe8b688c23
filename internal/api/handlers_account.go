package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fortuna/internal/models"
	"github.com/terraincognita07/fortuna/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) ShowAccount(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirectToLogin(c)
	if err != nil || handled {
		return err
	}
	return handler.render(c, "account", fiber.Map{
		"Title":            "Fortuna | Account",
		"Profile":          profileViewFromUser(user),
		"PersonalityTypes": services.PersonalityTypes,
	})
}

func (handler *Handler) UpdateAccount(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirectToLogin(c)
	if err != nil || handled {
		return err
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondFormError(c, fiber.StatusBadRequest, "invalid input", "/account")
	}

	handler.ensureDependencies()
	if err := handler.accountService.UpdateProfile(user, input.toService(), handler.now()); err != nil {
		status, message := accountErrorResponse(err, "failed to update account")
		if status == fiber.StatusInternalServerError {
			handler.logger.Error("update account", zap.Uint("user_id", user.ID), zap.Error(err))
		}
		return handler.respondFormError(c, status, message, "/account")
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{
			"ok":            true,
			"cyclical_sign": user.CyclicalSign,
		})
	}
	handler.setFlashCookie(c, FlashPayload{Success: "Your account has been updated successfully!"})
	return redirectOrJSON(c, "/account")
}

func (handler *Handler) ShowPasswordPage(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirectToLogin(c)
	if err != nil || handled {
		return err
	}
	return handler.render(c, "password", fiber.Map{
		"Title":  "Fortuna | Change Password",
		"Forced": user.MustChangePassword,
	})
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirectToLogin(c)
	if err != nil || handled {
		return err
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondFormError(c, fiber.StatusBadRequest, "invalid input", passwordChangePath)
	}

	handler.ensureDependencies()
	if err := handler.accountService.ChangePassword(user, input.CurrentPassword, input.NewPassword, input.ConfirmPassword); err != nil {
		status, message := accountErrorResponse(err, "failed to change password")
		if status == fiber.StatusInternalServerError {
			handler.logger.Error("change password", zap.Uint("user_id", user.ID), zap.Error(err))
		}
		return handler.respondFormError(c, status, message, passwordChangePath)
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{"ok": true})
	}
	handler.setFlashCookie(c, FlashPayload{Success: "Your password has been changed."})
	return redirectOrJSON(c, "/fortune")
}

func (handler *Handler) currentUserOrRedirectToLogin(c *fiber.Ctx) (*models.User, bool, error) {
	user, ok := currentUser(c)
	if !ok {
		if redirectErr := c.Redirect("/login", fiber.StatusSeeOther); redirectErr != nil {
			return nil, false, redirectErr
		}
		return nil, true, nil
	}
	return user, false, nil
}

type profileView struct {
	Name            string
	Username        string
	Email           string
	Birthday        string
	PersonalityType string
	CyclicalSign    string
	SolarSign       string
}

func profileViewFromUser(user *models.User) profileView {
	return profileView{
		Name:            user.Name,
		Username:        user.Username,
		Email:           user.Email,
		Birthday:        user.Birthday.Format("2006-01-02"),
		PersonalityType: user.PersonalityType,
		CyclicalSign:    user.CyclicalSign,
		SolarSign:       services.SolarZodiac(user.Birthday.Day(), int(user.Birthday.Month())),
	}
}
