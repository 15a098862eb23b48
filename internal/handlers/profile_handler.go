package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/taste-recommender/internal/models"
	"alfredoptarigan/taste-recommender/internal/services"
	"alfredoptarigan/taste-recommender/internal/validation"
)

type ProfileHandler struct {
	tasteService services.TasteService
}

func NewProfileHandler(tasteService services.TasteService) *ProfileHandler {
	return &ProfileHandler{
		tasteService: tasteService,
	}
}

// HandleExtract handles POST /profile
func (h *ProfileHandler) HandleExtract(c *fiber.Ctx) error {
	var req models.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return respondError(c, err, "Failed to validate request")
	}

	resp, err := h.tasteService.ExtractProfile(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to extract taste profile")
	}
	return c.JSON(resp)
}

// HandleContextual handles POST /contextual
func (h *ProfileHandler) HandleContextual(c *fiber.Ctx) error {
	var req models.ContextualRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return respondError(c, err, "Failed to validate request")
	}

	resp, err := h.tasteService.Contextual(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Failed to handle contextual request")
	}
	return c.JSON(resp)
}
