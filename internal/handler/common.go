package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/nihalcreates/pixagen-backend/internal/models"
)

// statusFor maps domain errors onto HTTP status codes so every handler
// reports the taxonomy the same way.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrAccountBlocked):
		return fiber.StatusUnauthorized
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrRequestNotPending),
		errors.Is(err, models.ErrPackageRemoved):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrUnknownPackage),
		errors.Is(err, models.ErrPaymentNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrInsufficientCredits):
		return fiber.StatusPaymentRequired
	case errors.Is(err, models.ErrMissingAPIKey):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(models.ErrorResponse(err.Error()))
}

// currentUser pulls the session identity set by the auth middleware.
func currentUser(c *fiber.Ctx) (uint, string, bool) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, "", false
	}
	role, _ := c.Locals("userRole").(string)
	if role == "" {
		role = models.RoleUser
	}
	return userID, role, true
}
