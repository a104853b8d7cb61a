package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/service"
	"github.com/nihalcreates/pixagen-backend/pkg/utils"
)

// AdminHandler groups everything behind the AdminOnly middleware.
type AdminHandler struct {
	userService     *service.UserService
	paymentService  *service.PaymentService
	settingsService *service.SettingsService
	validator       *utils.Validator
}

func NewAdminHandler(
	userService *service.UserService,
	paymentService *service.PaymentService,
	settingsService *service.SettingsService,
	validator *utils.Validator,
) *AdminHandler {
	return &AdminHandler{
		userService:     userService,
		paymentService:  paymentService,
		settingsService: settingsService,
		validator:       validator,
	}
}

func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(users, ""))
}

func (h *AdminHandler) BlockUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	if err := h.userService.BlockUser(userID); err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "User blocked"))
}

func (h *AdminHandler) UnblockUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	if err := h.userService.UnblockUser(userID); err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "User unblocked"))
}

func (h *AdminHandler) GrantCredits(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid user ID"))
	}

	var req models.GrantCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.userService.GrantCredits(userID, req.Amount); err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Credits added to user"))
}

func (h *AdminHandler) GetPaymentRequests(c *fiber.Ctx) error {
	requests, err := h.paymentService.GetAllRequests()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(requests, ""))
}

func (h *AdminHandler) ApprovePayment(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid payment ID"))
	}

	if err := h.paymentService.Approve(paymentID); err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Payment approved, credits added"))
}

func (h *AdminHandler) RejectPayment(c *fiber.Ctx) error {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid payment ID"))
	}

	if err := h.paymentService.Reject(paymentID); err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Payment rejected"))
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req models.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	settings, err := h.settingsService.UpdateSettings(req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(settings, "System settings updated"))
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
