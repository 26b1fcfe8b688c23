package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (handler *Handler) ShowFortune(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirectToLogin(c)
	if err != nil || handled {
		return err
	}

	handler.ensureDependencies()
	reading, err := handler.fortuneService.Today(c.UserContext(), user, handler.now())
	if err != nil {
		handler.logger.Error("resolve daily fortune", zap.Uint("user_id", user.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to save your fortune, please try again")
	}

	return handler.render(c, "fortune", fiber.Map{
		"Title":       "Fortuna | Daily Fortune",
		"Reading":     reading,
		"CurrentDate": reading.Day.Format("January 2, 2006"),
		"Generated":   !reading.Cached,
	})
}

func (handler *Handler) FortuneToday(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	handler.ensureDependencies()
	reading, err := handler.fortuneService.Today(c.UserContext(), user, handler.now())
	if err != nil {
		handler.logger.Error("resolve daily fortune", zap.Uint("user_id", user.ID), zap.Error(err))
		return apiError(c, fiber.StatusInternalServerError, "failed to save fortune")
	}

	return c.JSON(fiber.Map{
		"date":            reading.Day.Format("2006-01-02"),
		"fortune":         reading.Narrative,
		"solar_sign":      reading.SolarSign,
		"cyclical_sign":   reading.CyclicalSign,
		"yearly_forecast": reading.YearlyForecast,
		"cached":          reading.Cached,
	})
}
