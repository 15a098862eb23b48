package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alfredoptarigan/taste-recommender/internal/catalog"
	"alfredoptarigan/taste-recommender/internal/config"
	"alfredoptarigan/taste-recommender/internal/handlers"
	"alfredoptarigan/taste-recommender/internal/logging"
	"alfredoptarigan/taste-recommender/internal/repositories"
	"alfredoptarigan/taste-recommender/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stdout})
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("❌ Invalid configuration")
	}
	logging.Info().Str("env", cfg.Server.Env).Msg("✅ Config loaded successfully")

	// Load catalogs
	patterns, err := catalog.DefaultPatterns()
	if err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to load taste patterns")
	}
	contentCatalog, err := loadContentCatalog(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to load content catalog")
	}
	logging.Info().
		Str("source", cfg.Catalog.Source).
		Int("items", contentCatalog.Len()).
		Msg("✅ Content catalog loaded")

	// Initialize services
	tasteService := services.NewDefaultTasteService(patterns, contentCatalog, cfg.Recommend.MaxResults)
	worker := services.NewWorker(tasteService, cfg.Worker.Concurrency)
	logging.Info().Int("concurrency", cfg.Worker.Concurrency).Msg("✅ Services initialized successfully")

	if cfg.Server.AuthToken == "" {
		logging.Warn().Msg("⚠️ AUTH_TOKEN is empty, /mcp is unauthenticated")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Taste Recommender API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: customErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, MCP-Protocol-Version",
		ExposeHeaders: "MCP-Protocol-Version",
	}))

	if cfg.Server.RateLimitPerMinute > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.Server.RateLimitPerMinute,
			Expiration: time.Minute,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/metrics" || c.Path() == "/health"
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests",
				})
			},
		}))
	}

	// Routes
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	handlers.RegisterRoutes(app, handlers.RouteConfig{
		TasteService: tasteService,
		Worker:       worker,
		AuthToken:    cfg.Server.AuthToken,
		OwnerNumber:  cfg.Server.OwnerNumber,
	})
	logging.Info().Msg("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logging.Info().Msg("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logging.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logging.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}

// loadContentCatalog reads the catalog from Postgres or from YAML, embedded
// unless CATALOG_PATH points elsewhere.
func loadContentCatalog(cfg *config.Config) (*catalog.ContentCatalog, error) {
	if cfg.Catalog.Source != config.CatalogSourceDatabase {
		return catalog.LoadContent(cfg.Catalog.Path)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	items, err := repositories.NewCatalogRepository(db).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog table is empty, run scripts/seed_catalog.go first")
	}
	return catalog.NewContentCatalog(items)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	if code >= fiber.StatusInternalServerError {
		logging.Error().Err(err).Str("path", c.Path()).Msg("Unhandled error")
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
