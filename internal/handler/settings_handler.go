package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/service"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// GetPaymentSettings is public: users need the payment instructions before
// they can submit a top-up.
func (h *SettingsHandler) GetPaymentSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(settings, ""))
}

func (h *SettingsHandler) GetPaymentQR(c *fiber.Ctx) error {
	size, err := strconv.Atoi(c.Query("size", "256"))
	if err != nil || size < 64 || size > 1024 {
		size = 256
	}

	png, err := h.settingsService.PaymentQR(size)
	if err != nil {
		return fail(c, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
