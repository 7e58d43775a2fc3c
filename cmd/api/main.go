package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"garasiku/internal/config"
	"garasiku/internal/handler"
	"garasiku/internal/middleware"
	"garasiku/internal/repository"
	"garasiku/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (change feed and caching disabled)", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store := repository.NewStore(db)
	services := service.NewServices(store, redisClient, cfg)
	handlers := handler.NewHandlers(services)

	go runSweeper(context.Background(), services, cfg.SweepInterval)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1", middleware.AuthRequired(cfg.JWTSecret))

	transfers := v1.Group("/transfers")
	transfers.Post("/", h.Transfer.Create)
	transfers.Get("/incoming", h.Transfer.ListIncoming)
	transfers.Get("/outgoing", h.Transfer.ListOutgoing)
	transfers.Post("/activate", h.Transfer.Activate)
	transfers.Get("/:requestId", h.Transfer.Get)
	transfers.Post("/:requestId/accept", h.Transfer.Accept)
	transfers.Post("/:requestId/decline", h.Transfer.Decline)

	vehicles := v1.Group("/vehicles")
	vehicles.Get("/", h.Vehicle.List)
	vehicles.Get("/:vehicleId", h.Vehicle.Get)
	vehicles.Get("/:vehicleId/history", h.Vehicle.History)

	notifications := v1.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
	notifications.Delete("/:id", h.Notification.Delete)
}

// runSweeper periodically expires stale transfer requests and garbage
// collects expired notifications so list views stay fresh. Correctness does
// not depend on it: every state transition re-checks expiry transactionally.
func runSweeper(ctx context.Context, services *service.Services, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
		now := time.Now().UTC()

		if expired, err := services.Transfer.SweepExpired(sweepCtx, now); err != nil {
			log.Printf("Transfer expiry sweep failed: %v", err)
		} else if expired > 0 {
			log.Printf("Expired %d stale transfer requests", expired)
		}

		if deleted, err := services.Notification.SweepExpired(sweepCtx, now); err != nil {
			log.Printf("Notification sweep failed: %v", err)
		} else if deleted > 0 {
			log.Printf("Deleted %d expired notifications", deleted)
		}

		cancel()
	}
}
