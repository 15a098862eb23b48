package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/taste-recommender/internal/models"
	"alfredoptarigan/taste-recommender/internal/services"
	"alfredoptarigan/taste-recommender/internal/validation"
)

type RecommendHandler struct {
	tasteService services.TasteService
	worker       services.Worker
}

func NewRecommendHandler(
	tasteService services.TasteService,
	worker services.Worker,
) *RecommendHandler {
	return &RecommendHandler{
		tasteService: tasteService,
		worker:       worker,
	}
}

// HandleRecommend handles POST /recommend
func (h *RecommendHandler) HandleRecommend(c *fiber.Ctx) error {
	var req models.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return respondError(c, err, "Failed to validate request")
	}

	resp, err := h.tasteService.Recommend(services.WithSource(c.UserContext(), "api"), req)
	if err != nil {
		return respondError(c, err, "Failed to generate recommendations")
	}
	return c.JSON(resp)
}

// HandleBatch handles POST /recommend/batch
func (h *RecommendHandler) HandleBatch(c *fiber.Ctx) error {
	var req models.BatchRecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(c)
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return respondError(c, err, "Failed to validate request")
	}

	results := h.worker.RunBatch(c.UserContext(), req.Requests)

	return c.JSON(models.BatchRecommendResponse{
		BatchID: uuid.NewString(),
		Results: results,
	})
}
