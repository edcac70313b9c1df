package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/loan-origin/loan_origin/internal/applicant"
	"github.com/loan-origin/loan_origin/internal/chat"
	"github.com/loan-origin/loan_origin/internal/config"
	"github.com/loan-origin/loan_origin/internal/extraction"
	"github.com/loan-origin/loan_origin/internal/gemini"
	"github.com/loan-origin/loan_origin/internal/kyc"
	"github.com/loan-origin/loan_origin/internal/metrics"
	"github.com/loan-origin/loan_origin/internal/middleware"
	"github.com/loan-origin/loan_origin/internal/notification"
	"github.com/loan-origin/loan_origin/internal/sanction"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg     config.Config
	DB      *pgxpool.Pool
	Cache   *redis.Client
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce backend presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health and metrics
	RegisterHealthRoutes(app, d)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Repositories
	var repo applicant.Repository
	if d.DB != nil {
		repo = applicant.NewPostgresRepository(d.DB)
	} else {
		repo = applicant.NewMemoryRepository()
	}

	// Model-backed adapters; without credentials the extractor degrades to
	// the fixed fallback reply and letters come from the static template.
	var extractor extraction.Extractor
	var letters sanction.LetterWriter
	if d.Cfg.GeminiAPIKey != "" {
		client := gemini.New(d.Cfg.GeminiAPIKey, d.Cfg.GeminiModel, d.Cfg.GeminiTimeout)
		extractor = extraction.NewGeminiExtractor(client)
		letters = sanction.NewGeminiWriter(client)
	} else {
		extractor = extraction.Unavailable()
		letters = sanction.StaticWriter{}
	}

	notifier := notification.NewLoggerNotifier(d.Logger)
	chatSvc := chat.NewService(repo, extractor, d.Metrics, d.Logger)
	kycSvc := kyc.NewService(repo, letters, notifier, d.Metrics, d.Logger)

	chatHandler := chat.NewHandler(chatSvc)
	kycHandler := kyc.NewHandler(kycSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	RegisterChatRoutes(api, chatHandler, middleware.ChatRateLimit(d.Cache, d.Cfg.ChatRateLimit))
	RegisterKYCRoutes(api, kycHandler, d)

	return nil
}
