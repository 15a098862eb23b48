package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/taste-recommender/internal/services"
)

const (
	ServiceName    = "mcp-taste-server"
	ServiceVersion = "2.0.0"
)

type CatalogHandler struct {
	tasteService services.TasteService
}

func NewCatalogHandler(tasteService services.TasteService) *CatalogHandler {
	return &CatalogHandler{
		tasteService: tasteService,
	}
}

// HandleList handles GET /catalog
func (h *CatalogHandler) HandleList(c *fiber.Ctx) error {
	entries := h.tasteService.Catalog()
	return c.JSON(fiber.Map{
		"items": entries,
		"total": len(entries),
	})
}

// HandleGet handles GET /catalog/:id
func (h *CatalogHandler) HandleGet(c *fiber.Ctx) error {
	item, ok := h.tasteService.CatalogItem(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Catalog item not found",
		})
	}
	return c.JSON(item)
}

// HandleHealth handles GET /health
func (h *CatalogHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":                      "healthy",
		"server":                      ServiceName,
		"version":                     ServiceVersion,
		"supported_protocol_versions": supportedProtocolVersions,
		"tools_available":             len(toolDefinitions),
		"catalog_size":                h.tasteService.CatalogSize(),
		"time":                        time.Now().UTC(),
	})
}

// HandleRoot handles GET /
func (h *CatalogHandler) HandleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":      "Taste Recommender API",
		"version":      ServiceVersion,
		"catalog_size": h.tasteService.CatalogSize(),
		"endpoints": []string{
			"POST /api/v1/recommend",
			"POST /api/v1/recommend/batch",
			"POST /api/v1/profile",
			"POST /api/v1/contextual",
			"GET /api/v1/catalog",
			"GET /api/v1/catalog/:id",
			"GET /api/v1/health",
			"POST /mcp",
			"GET /metrics",
		},
	})
}
