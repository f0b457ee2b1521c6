package main

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/postpilothq/postpilot/configs"
	"github.com/postpilothq/postpilot/internal/api/handlers"
	"github.com/postpilothq/postpilot/internal/api/middleware"
	job "github.com/postpilothq/postpilot/internal/jobs"
	"github.com/postpilothq/postpilot/internal/notify"
	"github.com/postpilothq/postpilot/internal/queue"
	"github.com/postpilothq/postpilot/internal/repository"
	"github.com/postpilothq/postpilot/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	notifier := notify.NewNotifier()
	unsubscribe := notifier.Subscribe(func(e notify.Event) {
		slog.Warn("degradation event",
			"component", e.Component,
			"severity", string(e.Severity),
			"message", e.Message)
	})
	defer unsubscribe()

	quickPostRepo := repository.NewQuickPostRepository(db)
	campaignPostRepo := repository.NewCampaignPostRepository(db)
	trendCacheRepo := repository.NewTrendCacheRepository(db)
	pkceRepo := repository.NewPKCERepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)

	r2Service, err := service.NewR2Service(*cfg)
	if err != nil {
		log.Fatalf("Failed to set up object storage: %v", err)
	}

	scheduleService := service.NewScheduleService(quickPostRepo, campaignPostRepo)
	bestTimeService := service.NewBestTimeService()
	trendService := service.NewTrendService(trendCacheRepo, notifier, cfg.TrendCacheHours)
	groundingClient := service.NewGroundingClient(*cfg)
	complianceService := service.NewComplianceService()
	qualityService := service.NewQualityService()
	linkPreviewService := service.NewLinkPreviewService(&http.Client{Timeout: 5 * time.Second})
	emailService := service.NewEmailService(*cfg, notifier)
	mediaService := service.NewMediaService(mediaAssetRepo, r2Service)
	oauthService := service.NewOAuthService(*cfg, pkceRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	platform := handlers.NewPlatformHandler(oauthService, *cfg)
	app.Get("/auth/:platform", platform.ConnectAccount)
	app.Get("/auth/:platform/callback", platform.CallbackHandler)

	email := handlers.NewEmailHandler(emailService)
	app.Get("/api/email/status", email.Status)
	app.Post("/api/email/failed-post", email.FailedPost)
	app.Post("/api/email/token-expiration", email.TokenExpiration)

	linkPreview := handlers.NewLinkPreviewHandler(linkPreviewService)
	app.Post("/api/link-preview", linkPreview.Preview)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	schedule := handlers.NewScheduleHandler(scheduleService, bestTimeService)
	api.Get("/schedule", schedule.GetSchedule)
	api.Get("/schedule/stats", schedule.GetStats)
	api.Post("/schedule/reschedule", schedule.BulkReschedule)
	api.Post("/schedule/delete", schedule.BulkDelete)
	api.Post("/schedule/remove", schedule.RemovePost)
	api.Get("/schedule/export", schedule.ExportCSV)
	api.Get("/schedule/best-times", schedule.BestTimes)
	api.Post("/posts/create", schedule.CreateQuickPost)

	trends := handlers.NewTrendsHandler(trendService, groundingClient)
	api.Post("/trends/research", trends.Research)
	api.Get("/trends/cache/stats", trends.CacheStats)
	api.Post("/trends/cache/invalidate", trends.Invalidate)

	content := handlers.NewContentHandler(complianceService, qualityService)
	api.Post("/content/validate", content.Validate)
	api.Post("/content/quality", content.Quality)

	media := handlers.NewMediaHandler(mediaService)
	api.Post("/media/upload", media.Upload)

	notifications := handlers.NewNotificationsHandler(client)
	api.Post("/notifications/failed-post", notifications.QueueFailedPost)
	api.Post("/notifications/token-expiration", notifications.QueueTokenExpiry)

	// cron jobs
	maintenanceJob := job.NewMaintenanceJob(trendCacheRepo, pkceRepo)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", maintenanceJob.PurgeExpired)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		worker := queue.NewWorker(emailService)
		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeNotifyFailedPost, worker.HandleFailedPostTask)
		mux.HandleFunc(queue.TaskTypeNotifyTokenExpiry, worker.HandleTokenExpiryTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
