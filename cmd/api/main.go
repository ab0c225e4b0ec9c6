package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"nextalk-server/internal/config"
	"nextalk-server/internal/handler"
	"nextalk-server/internal/middleware"
	"nextalk-server/internal/queue"
	"nextalk-server/internal/repository"
	"nextalk-server/internal/service"
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

	redis, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (image upload will not work)", err)
	}

	queueClient, err := queue.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to create queue client: %v", err)
	}
	defer queueClient.Close()

	repos := repository.NewRepositories(db, redis, cfg.SessionTTL)
	services := service.NewServices(repos, minioClient, queueClient, cfg)
	handlers := handler.NewHandlers(services, cfg)

	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		if err := services.Auth.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatalf("Failed to bootstrap admin user: %v", err)
		}
	}

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
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	setupRoutes(app, handlers, services, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/login", h.Auth.Login)
	app.Get("/media/*", h.Media.Get)

	session := middleware.SessionRequired(services.Auth, cfg.SessionCookieName)

	app.Get("/login", session, h.Auth.Session)
	app.Post("/logout", session, h.Auth.Logout)
	app.Post("/addToken", session, h.Token.AddToken)

	app.Get("/getUsers", session, middleware.AdminRequired(), h.User.GetUsers)

	app.Get("/notifications", session, h.Notification.List)
	app.Get("/notifications/unread-count", session, h.Notification.UnreadCount)
	app.Put("/notifications", session, h.Notification.MarkRead)
	app.Patch("/notifications/read-all", session, h.Notification.MarkAllRead)
	app.Patch("/notifications/:id/read", session, h.Notification.MarkReadByID)
	app.Post("/notifications", session, middleware.AdminRequired(), h.Notification.Broadcast)
}
