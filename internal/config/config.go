package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourceDatabase = "database"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Catalog   CatalogConfig
	Recommend RecommendConfig
	Worker    WorkerConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port               string
	Env                string
	AuthToken          string
	OwnerNumber        string
	RateLimitPerMinute int
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type CatalogConfig struct {
	// Source is embedded or database.
	Source string
	// Path optionally replaces the embedded content catalog with a YAML file.
	Path string
}

type RecommendConfig struct {
	MaxResults int
}

type WorkerConfig struct {
	Concurrency int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	envErr := godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "3000"),
			Env:                getEnv("ENV", "development"),
			AuthToken:          getEnv("AUTH_TOKEN", ""),
			OwnerNumber:        getEnv("OWNER_NUMBER", ""),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
			ReadTimeout:        getEnvAsDuration("READ_TIMEOUT", "30s"),
			WriteTimeout:       getEnvAsDuration("WRITE_TIMEOUT", "30s"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "taste_recommender"),
		},
		Catalog: CatalogConfig{
			Source: getEnv("CATALOG_SOURCE", CatalogSourceEmbedded),
			Path:   getEnv("CATALOG_PATH", ""),
		},
		Recommend: RecommendConfig{
			MaxResults: getEnvAsInt("RECOMMEND_MAX_RESULTS", 3),
		},
		Worker: WorkerConfig{
			Concurrency: getEnvAsInt("WORKER_CONCURRENCY", 4),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
	if envErr != nil && cfg.Log.Format == "console" {
		fmt.Fprintln(os.Stderr, "No .env file found. Using environment and defaults.")
	}
	return cfg
}

// Validate catches settings that would make the server unusable.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case CatalogSourceEmbedded, CatalogSourceDatabase:
	default:
		return fmt.Errorf("invalid CATALOG_SOURCE %q: want %s or %s", c.Catalog.Source, CatalogSourceEmbedded, CatalogSourceDatabase)
	}
	if c.Recommend.MaxResults < 1 || c.Recommend.MaxResults > 10 {
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be between 1 and 10, got %d", c.Recommend.MaxResults)
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be positive, got %d", c.Worker.Concurrency)
	}
	if c.IsProduction() && c.Server.AuthToken == "" {
		return fmt.Errorf("AUTH_TOKEN is required when ENV=production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return d
	}
	d, _ := time.ParseDuration(defaultValue)
	return d
}
