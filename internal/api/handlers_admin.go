package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fortuna/internal/models"
	"github.com/terraincognita07/fortuna/internal/services"
	"go.uber.org/zap"
)

func (handler *Handler) ShowAdminHoroscopes(c *fiber.Ctx) error {
	handler.ensureDependencies()
	today := models.UTCDay(handler.now())
	stored, err := handler.repositories.References.CountHoroscopes(today)
	if err != nil {
		handler.logger.Error("count horoscopes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("failed to load horoscopes")
	}

	return handler.render(c, "admin_horoscopes", fiber.Map{
		"Title":         "Fortuna | Daily Horoscopes",
		"Today":         today.Format("2006-01-02"),
		"StoredToday":   stored,
		"HasCredential": handler.horoscopes != nil && handler.horoscopes.HasCredential(),
	})
}

func (handler *Handler) RefreshHoroscopes(c *fiber.Ctx) error {
	handler.ensureDependencies()
	result, err := handler.refreshService.Refresh(c.UserContext(), handler.now())
	if err != nil {
		status, message := refreshErrorResponse(err)
		if status == fiber.StatusInternalServerError {
			handler.logger.Error("refresh horoscopes", zap.Error(err))
		}
		if isAPIPath(c.Path()) {
			return apiError(c, status, message)
		}
		return handler.respondFormError(c, status, message, "/admin/horoscopes")
	}

	if isAPIPath(c.Path()) || acceptsJSON(c) {
		return c.JSON(fiber.Map{
			"ok":       true,
			"date":     result.Day.Format("2006-01-02"),
			"inserted": result.Inserted,
			"skipped":  result.Skipped,
		})
	}
	handler.setFlashCookie(c, FlashPayload{Success: refreshSummary(result)})
	return redirectOrJSON(c, "/admin/horoscopes")
}

func refreshErrorResponse(err error) (int, string) {
	if errors.Is(err, services.ErrHoroscopeCredentialMissing) {
		return fiber.StatusPreconditionFailed, "horoscope API key is not configured"
	}
	return fiber.StatusInternalServerError, "failed to store daily horoscopes"
}

func refreshSummary(result services.HoroscopeRefreshResult) string {
	summary := fmt.Sprintf("Daily horoscopes have been refreshed: %d stored.", result.Inserted)
	if len(result.Skipped) > 0 {
		summary += " Skipped: " + strings.Join(result.Skipped, ", ") + "."
	}
	return summary
}
