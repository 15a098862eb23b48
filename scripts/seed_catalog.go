package main

import (
	"os"
	"strings"

	"alfredoptarigan/taste-recommender/internal/catalog"
	"alfredoptarigan/taste-recommender/internal/config"
	"alfredoptarigan/taste-recommender/internal/logging"
	"alfredoptarigan/taste-recommender/internal/repositories"
)

// Seeds the catalog_items table from the content catalog YAML (embedded, or
// CATALOG_PATH). Re-running it overwrites rows with the same id.
func main() {
	cfg := config.Load()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: "console", Output: os.Stdout})
	logging.Info().Msg("🚀 Starting catalog seed...")

	content, err := catalog.LoadContent(cfg.Catalog.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to load content catalog")
	}
	logging.Info().Int("items", content.Len()).Msg("📄 Content catalog loaded")

	db, err := config.InitDatabase(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}
	repo := repositories.NewCatalogRepository(db)

	if err := repo.Upsert(content.Items()); err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to seed catalog")
	}

	count, err := repo.Count()
	if err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to count catalog items")
	}

	logging.Info().Msg(strings.Repeat("=", 60))
	logging.Info().Int("seeded", content.Len()).Int64("total_rows", count).Msg("📊 Seed summary")
	logging.Info().Msg(strings.Repeat("=", 60))
	logging.Info().Msg("✅ Catalog seeded successfully!")
}
