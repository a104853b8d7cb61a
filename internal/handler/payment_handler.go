package handler

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/service"
	"github.com/nihalcreates/pixagen-backend/pkg/utils"
	"github.com/stripe/stripe-go/v74/webhook"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	packageService *service.PackageService
	validator      *utils.Validator
}

func NewPaymentHandler(paymentService *service.PaymentService, packageService *service.PackageService, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		packageService: packageService,
		validator:      validator,
	}
}

func (h *PaymentHandler) GetCreditPackages(c *fiber.Ctx) error {
	packages, err := h.packageService.GetAllPackages()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(packages, ""))
}

func (h *PaymentHandler) SubmitPaymentRequest(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	request, err := h.paymentService.Submit(userID, req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(request, "Payment submitted for verification"))
}

func (h *PaymentHandler) GetMyPaymentRequests(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	requests, err := h.paymentService.GetUserRequests(userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(requests, ""))
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	packageID, err := strconv.ParseUint(c.Params("packageId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid package ID"))
	}

	session, err := h.paymentService.CreateCheckoutSession(userID, uint(packageID))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.SuccessResponse(session, ""))
}

func (h *PaymentHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	webhookSecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	payload := c.Body()
	signatureHeader := c.Get("Stripe-Signature")

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Webhook signature verification failed"))
	}

	if err := h.paymentService.HandleStripeWebhook(&event); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
