package api

import (
	"errors"
	"strings"

	"catalog-assistant/docs"
	"catalog-assistant/internal/api/handlers"
	"catalog-assistant/pkg/config"
	"catalog-assistant/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Chat       *handlers.ChatHandler
	Training   *handlers.TrainingHandler
	Storefront *handlers.StorefrontHandler
	Catalog    *handlers.CatalogHandler
}

func SetupRouter(h Handlers, cfg *config.ServerConfig, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(appLogger))

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", h.Health.Root)

	api := app.Group("/api")
	api.Get("/health", h.Health.Health)

	chat := api.Group("/chat")
	chat.Post("", h.Chat.Chat)
	chat.Get("/quick-actions", h.Chat.QuickActions)
	chat.Post("/quick-actions/:action", h.Chat.QuickAction)

	training := api.Group("/training")
	training.Post("/process-products", h.Training.ProcessProducts)
	training.Post("/products", h.Training.TrainProducts)
	training.Get("/status", h.Training.Status)
	training.Get("/summary", h.Training.Summary)

	api.Get("/shopify/products", h.Storefront.Products)

	products := api.Group("/products")
	products.Get("/search", h.Catalog.Search)
	products.Get("/recommendations/:bucket", h.Catalog.Recommendations)

	return app
}
