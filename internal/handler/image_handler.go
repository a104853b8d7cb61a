package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nihalcreates/pixagen-backend/internal/models"
	"github.com/nihalcreates/pixagen-backend/internal/service"
	"github.com/nihalcreates/pixagen-backend/pkg/utils"
)

type ImageHandler struct {
	imageService *service.ImageService
	validator    *utils.Validator
}

func NewImageHandler(imageService *service.ImageService, validator *utils.Validator) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		validator:    validator,
	}
}

func (h *ImageHandler) Generate(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.GenerateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	image, err := h.imageService.Generate(c.Context(), userID, role, req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(image, "Image generated"))
}

func (h *ImageHandler) Edit(c *fiber.Ctx) error {
	userID, role, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	var req models.EditImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	image, err := h.imageService.Edit(c.Context(), userID, role, req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(image, "Image edited"))
}

func (h *ImageHandler) GetGallery(c *fiber.Ctx) error {
	userID, _, ok := currentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	return c.JSON(models.SuccessResponse(h.imageService.Gallery(userID), ""))
}
