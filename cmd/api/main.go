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
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"gram-seva/internal/config"
	"gram-seva/internal/domain"
	"gram-seva/internal/handler"
	"gram-seva/internal/middleware"
	"gram-seva/internal/repository"
	"gram-seva/internal/service"
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

	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to run schema migration: %v", err)
	}

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to MinIO: %v (photo upload will not work)", err)
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, minioClient, cfg)
	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    int(cfg.MaxPhotoSizeBytes) + 1024*1024,
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

	setupRoutes(app, handlers, services, redisClient)

	scheduler := startScheduler(repos, services, cfg)
	defer scheduler.Stop()

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers, services *service.Services, redisClient *redis.Client) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	// OTP endpoints are the abuse magnet, so they get their own limit.
	otpLimit := middleware.RateLimit(redisClient, "otp", 5, time.Minute)

	auth := v1.Group("/auth")
	auth.Post("/otp/register", otpLimit, h.Auth.RequestRegistrationOTP)
	auth.Post("/otp/login", otpLimit, h.Auth.RequestLoginOTP)
	auth.Post("/otp/verify", otpLimit, h.Auth.VerifyOTP)
	auth.Post("/admin/login", h.Auth.AdminLogin)
	auth.Post("/super-admin/login", h.Auth.SuperAdminLogin)
	auth.Post("/refresh", h.Auth.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(services.Auth))

	citizen := protected.Group("", middleware.RequireRole(domain.RoleCitizen))
	citizen.Post("/issues", h.Issue.Create)
	citizen.Get("/issues", h.Issue.ListMine)
	citizen.Get("/achievements", h.Achievement.ListMine)

	protected.Get("/issues/:id", h.Issue.Get)

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.Get("/issues", h.Issue.ListForAdmin)
	admin.Patch("/issues/:id/status", h.Issue.UpdateStatus)
	admin.Get("/achievements", h.Achievement.ListMineAdmin)

	super := protected.Group("/super-admin", middleware.RequireRole(domain.RoleSuperAdmin))
	super.Post("/admins", h.Admin.CreateAdmin)
	super.Get("/admins", h.Admin.ListAdmins)
	super.Patch("/admins/:id/deactivate", h.Admin.DeactivateAdmin)
	super.Post("/issues/:id/assign", h.Admin.AssignIssue)
	super.Post("/broadcast", h.Admin.Broadcast)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)
}

// startScheduler runs the nightly retention jobs: old notifications
// and expired sessions.
func startScheduler(repos *repository.Repositories, services *service.Services, cfg *config.Config) *cron.Cron {
	scheduler := cron.New()

	scheduler.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		deleted, err := services.Notification.Cleanup(ctx, cfg.NotificationRetentionDays)
		if err != nil {
			log.Printf("Notification cleanup failed: %v", err)
		} else if deleted > 0 {
			log.Printf("Notification cleanup removed %d notifications", deleted)
		}

		removed, err := repos.Session.DeleteExpired(ctx)
		if err != nil {
			log.Printf("Session cleanup failed: %v", err)
		} else if removed > 0 {
			log.Printf("Session cleanup removed %d sessions", removed)
		}
	})

	scheduler.Start()
	return scheduler
}
