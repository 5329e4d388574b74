package routers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"virtualab/config"
	"virtualab/database"
	"virtualab/middleware"
	articleRoutes "virtualab/routers/articleRoutes"
	authRoutes "virtualab/routers/authRoutes"
	exerciseRoutes "virtualab/routers/exerciseRoutes"
	introductionRoutes "virtualab/routers/introductionRoutes"
	materialRoutes "virtualab/routers/materialRoutes"
	postRoutes "virtualab/routers/postRoutes"
	studentRoutes "virtualab/routers/studentRoutes"
	userProfileRoutes "virtualab/routers/userRoutes"
)

// SetupRoutes mounts every API group under /v1 plus the health check.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(); err != nil {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Database unavailable!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})

	v1 := app.Group("/v1")

	authRoutes.SetupAuthRoutes(v1)
	userProfileRoutes.SetupUserRoutes(v1)
	materialRoutes.SetupMaterialRoutes(v1)
	articleRoutes.SetupArticleRoutes(v1)
	exerciseRoutes.SetupExerciseRoutes(v1)
	studentRoutes.SetupStudentRoutes(v1)
	postRoutes.SetupPostRoutes(v1)
	introductionRoutes.SetupIntroductionRoutes(v1)
}

// NewApp builds the Fiber app with the global middleware and every route.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // videos are uploaded in one request
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return middleware.JsonResponse(c, e.Code, false, e.Message, nil)
			}
			return middleware.ErrorResponse(c, err)
		},
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.AppConfig.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: strings.Join([]string{"Content-Type", "Authorization", middleware.ReviewerHeader}, ","),
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Login and registration are the only anonymous writes
	if config.AppConfig.AuthRateLimit > 0 {
		app.Use("/v1/auth", limiter.New(limiter.Config{
			Max:        config.AppConfig.AuthRateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return middleware.JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many requests, try again later!", nil)
			},
		}))
	}

	SetupRoutes(app)

	return app
}
