package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"foodgram/internal/config"
	"foodgram/internal/database"
	"foodgram/internal/handlers"
	"foodgram/internal/metrics"
	"foodgram/internal/repositories"
	"foodgram/internal/services"
	"foodgram/internal/storage"
	"foodgram/pkg/rabbitmq"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, database.ParseLogLevel(cfg.DatabaseLog))
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Events ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			return err
		}
		defer mqClient.Close()
		events = mqClient

		if err := mqClient.ConsumeEvents(logEvent); err != nil {
			log.Warn().Err(err).Msg("Failed to start RabbitMQ consumer")
		}
	} else {
		log.Info().Msg("RABBITMQ_URL is empty, domain events are not published")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	tagRepo := repositories.NewGORMTagRepository(db)
	ingredientRepo, err := repositories.NewCachedIngredientRepository(repositories.NewGORMIngredientRepository(db), cfg.IngredientCacheSize)
	if err != nil {
		return err
	}
	recipeRepo := repositories.NewGORMRecipeRepository(db)
	interactionRepo := repositories.NewGORMInteractionRepository(db)
	followRepo := repositories.NewGORMFollowRepository(db)
	shoppingListRepo := repositories.NewGORMShoppingListRepository(db)

	// --- Services ---
	svc := handlers.Services{
		Auth:          services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL),
		Users:         services.NewUserService(userRepo, followRepo),
		Follows:       services.NewFollowService(followRepo, userRepo, recipeRepo, events),
		Catalog:       services.NewCatalogService(tagRepo, ingredientRepo),
		Recipes:       services.NewRecipeService(recipeRepo, tagRepo, ingredientRepo, interactionRepo, followRepo, images, events),
		Interactions:  services.NewInteractionService(interactionRepo, recipeRepo, events),
		ShoppingLists: services.NewShoppingListService(shoppingListRepo),
	}

	app := newApp()
	handlers.RegisterRoutes(app.Group("/api"), svc, cfg.PageSize)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("Starting server")
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("Error during Fiber shutdown")
	}
	log.Info().Msg("Server gracefully stopped")
	return nil
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "foodgram",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return app
}

func newImageStore(ctx context.Context, cfg *config.Config) (storage.ImageStore, error) {
	if cfg.ImageStore == "s3" {
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}
	return storage.NewLocalStore(cfg.MediaRoot, cfg.MediaURL), nil
}

func logEvent(msg amqp.Delivery) error {
	var event services.Event
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to decode event %s: %w", msg.RoutingKey, err)
	}
	log.Info().
		Str("event", event.Type).
		Str("recipe_id", event.RecipeID).
		Str("user_id", event.UserID).
		Str("author_id", event.AuthorID).
		Time("occurred_at", event.OccurredAt).
		Msg("Received domain event")
	return nil
}
