// @title           Thumbnail Generator API
// @version         1.0.0
// @description     Backend API for generating video thumbnails with text-to-image models. Requests are composed into a prompt, tried against a priority-ordered list of models, uploaded to storage and persisted per user.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"thumbnail-backend/docs"
	"thumbnail-backend/internal/config"
	"thumbnail-backend/internal/database"
	"thumbnail-backend/internal/events"
	"thumbnail-backend/internal/handlers"
	"thumbnail-backend/internal/imageproc"
	"thumbnail-backend/internal/inference"
	"thumbnail-backend/internal/logger"
	"thumbnail-backend/internal/middleware"
	"thumbnail-backend/internal/minio"
	"thumbnail-backend/internal/services"
	"thumbnail-backend/internal/store"
	"thumbnail-backend/internal/supabase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "production")
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	thumbnailStore, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		return err
	}

	inferenceClient := inference.NewClient(cfg.InferenceAPIBaseURL, cfg.InferenceAPIKey, cfg.InferenceTimeout)
	chain := inference.NewChain(inference.ModelProviders(inferenceClient, cfg.InferenceModels, log), log)
	log.Info().Strs("models", chain.Providers()).Msg("inference providers configured")

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing lifecycle events")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	generationService := services.NewGenerationService(thumbnailStore, chain, uploader, publisher, log)
	if cfg.ImagePostprocess {
		generationService.WithPostProcessor(imageproc.NewProcessor(cfg.OverlayFontPath))
	}

	thumbnailsHandler := handlers.NewThumbnailsHandler(generationService, log)
	optionsHandler := handlers.NewOptionsHandler()

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestLogger(log))
	router.Use(gin.Recovery())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	generate := []gin.HandlerFunc{thumbnailsHandler.GenerateThumbnail}
	if cfg.RedisURL != "" {
		limiter, err := middleware.NewRedisLimiter(ctx, cfg.RedisURL, cfg.GenerateRateLimit, cfg.GenerateRateWindow)
		if err != nil {
			return err
		}
		defer limiter.Close()
		generate = append([]gin.HandlerFunc{middleware.RateLimit(limiter, log)}, generate...)
		log.Info().Int("limit", cfg.GenerateRateLimit).Dur("window", cfg.GenerateRateWindow).Msg("generate rate limit enabled")
	}

	// Thumbnail routes
	api.POST("/thumbnails/generate", generate...)
	api.GET("/thumbnails/options", optionsHandler.GetOptions)
	api.GET("/thumbnails", thumbnailsHandler.ListThumbnails)
	api.GET("/thumbnails/:id", thumbnailsHandler.GetThumbnail)
	api.DELETE("/thumbnails/:id", thumbnailsHandler.DeleteThumbnail)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// In-flight generations may run a full inference timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.InferenceTimeout+10*time.Second)
	defer cancel()

	log.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func newStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (services.ThumbnailStore, func(), error) {
	switch cfg.StoreDriver {
	case "postgres":
		migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize migrator: %w", err)
		}
		err = migrator.Run(ctx)
		migrator.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}
		log.Info().Msg("migrations completed successfully")

		dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database client: %w", err)
		}
		return dbClient, func() { dbClient.Close() }, nil
	case "supabase":
		restStore, err := supabase.NewRestStore(cfg.SupabaseURL, cfg.SupabasePublishableKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize Supabase client: %w", err)
		}
		return restStore, func() {}, nil
	default:
		log.Warn().Msg("using in-memory thumbnail store, records are lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}
}

func newUploader(ctx context.Context, cfg *config.Config) (services.Uploader, error) {
	if cfg.StorageDriver == "minio" {
		storage, err := minio.NewStorage(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioPublicURL, cfg.MinioUseSSL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to storage: %w", err)
		}
		return storage, nil
	}
	return supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket), nil
}
