package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultModels is the priority-ordered list of text-to-image models tried
// for every generation request.
var DefaultModels = []string{
	"black-forest-labs/FLUX.1-schnell",
	"stabilityai/stable-diffusion-xl-base-1.0",
	"stabilityai/stable-diffusion-2-1",
	"runwayml/stable-diffusion-v1-5",
}

type Config struct {
	// Inference API
	InferenceAPIKey     string        `env:"INFERENCE_API_KEY"`
	InferenceAPIBaseURL string        `env:"INFERENCE_API_BASE_URL" envDefault:"https://api-inference.huggingface.co/"`
	InferenceModels     []string      `env:"INFERENCE_MODELS" envSeparator:","`
	InferenceTimeout    time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"120s"`

	// Supabase
	SupabaseURL            string `env:"SUPABASE_URL"`
	SupabasePublishableKey string `env:"SUPABASE_PUBLISHABLE_KEY"`
	SupabaseJWTSecret      string `env:"SUPABASE_JWT_SECRET"`
	SupabaseStorageBucket  string `env:"SUPABASE_STORAGE_BUCKET" envDefault:"thumbnails"`

	// Storage (supabase or minio)
	StorageDriver  string `env:"STORAGE_DRIVER" envDefault:"supabase"`
	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"thumbnails"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinioPublicURL string `env:"MINIO_PUBLIC_URL"`

	// Thumbnail store (postgres, supabase or memory)
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`

	// Rate limiting
	RedisURL           string        `env:"REDIS_URL"`
	GenerateRateLimit  int           `env:"GENERATE_RATE_LIMIT" envDefault:"10"`
	GenerateRateWindow time.Duration `env:"GENERATE_RATE_WINDOW" envDefault:"1h"`

	// Events
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"thumbnail-events"`

	// Post-processing
	ImagePostprocess bool   `env:"IMAGE_POSTPROCESS" envDefault:"false"`
	OverlayFontPath  string `env:"OVERLAY_FONT_PATH"`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, parses the environment and validates the
// result.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if len(cfg.InferenceModels) == 0 {
		cfg.InferenceModels = append([]string(nil), DefaultModels...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.InferenceAPIKey == "" {
		return fmt.Errorf("INFERENCE_API_KEY is required")
	}
	if len(c.InferenceModels) == 0 {
		return fmt.Errorf("INFERENCE_MODELS must name at least one model")
	}
	if c.InferenceTimeout <= 0 {
		return fmt.Errorf("INFERENCE_TIMEOUT must be positive")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}

	switch c.StorageDriver {
	case "supabase":
		if c.SupabaseURL == "" || c.SupabasePublishableKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required for supabase storage")
		}
	case "minio":
		if c.MinioEndpoint == "" || c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			return fmt.Errorf("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for minio storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	switch c.StoreDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	case "supabase":
		if c.SupabaseURL == "" || c.SupabasePublishableKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_PUBLISHABLE_KEY are required for the supabase store")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.RedisURL != "" && (c.GenerateRateLimit <= 0 || c.GenerateRateWindow <= 0) {
		return fmt.Errorf("GENERATE_RATE_LIMIT and GENERATE_RATE_WINDOW must be positive")
	}

	return nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
