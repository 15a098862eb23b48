package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/taste-recommender/internal/services"
)

type RouteConfig struct {
	TasteService services.TasteService
	Worker       services.Worker
	AuthToken    string
	OwnerNumber  string
}

// RegisterRoutes mounts the REST API under /api/v1 and the MCP endpoint at
// /mcp. The MCP endpoint is only guarded when an auth token is configured.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	recommendHandler := NewRecommendHandler(cfg.TasteService, cfg.Worker)
	profileHandler := NewProfileHandler(cfg.TasteService)
	catalogHandler := NewCatalogHandler(cfg.TasteService)
	mcpHandler := NewMCPHandler(cfg.TasteService, cfg.OwnerNumber)

	api := app.Group("/api/v1")
	api.Get("/health", catalogHandler.HandleHealth)
	api.Get("/catalog", catalogHandler.HandleList)
	api.Get("/catalog/:id", catalogHandler.HandleGet)
	api.Post("/recommend", recommendHandler.HandleRecommend)
	api.Post("/recommend/batch", recommendHandler.HandleBatch)
	api.Post("/profile", profileHandler.HandleExtract)
	api.Post("/contextual", profileHandler.HandleContextual)

	if cfg.AuthToken != "" {
		app.Post("/mcp", MCPAuth(cfg.AuthToken), mcpHandler.Handle)
	} else {
		app.Post("/mcp", mcpHandler.Handle)
	}
	app.Get("/health", catalogHandler.HandleHealth)
	app.Get("/", catalogHandler.HandleRoot)
}
