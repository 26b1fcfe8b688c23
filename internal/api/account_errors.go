package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fortuna/internal/services"
)

var accountValidationErrors = []error{
	services.ErrInvalidName,
	services.ErrInvalidUsername,
	services.ErrInvalidEmail,
	services.ErrInvalidBirthday,
	services.ErrInvalidPersonalityType,
	services.ErrPasswordMismatch,
	services.ErrWeakPassword,
	services.ErrInvalidCurrentPass,
}

// accountErrorResponse maps account service errors to a status and a message
// safe to show the user. Unknown errors collapse into fallback.
func accountErrorResponse(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
		return fiber.StatusConflict, err.Error()
	}
	for _, known := range accountValidationErrors {
		if errors.Is(err, known) {
			return fiber.StatusBadRequest, known.Error()
		}
	}
	return fiber.StatusInternalServerError, fallback
}
