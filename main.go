package main

import (
	"lams/config"
	"lams/database"
	"lams/middleware"
	academicsRoutes "lams/routers/academicsRoutes"
	authRoutes "lams/routers/authRoutes"
	contentRoutes "lams/routers/contentRoutes"
	examRoutes "lams/routers/examRoutes"
	questionRoutes "lams/routers/questionRoutes"
	reportRoutes "lams/routers/reportRoutes"
	studentExamRoutes "lams/routers/studentExamRoutes"
	subscriptionRoutes "lams/routers/subscriptionRoutes"
	userRoutes "lams/routers/userRoutes"
	"lams/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",  // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	rateLimiter := middleware.NewRateLimiter(config.AppConfig.RateLimitPerMin, time.Minute)
	app.Use(rateLimiter.Handler())

	responseCache := middleware.NewResponseCache(config.AppConfig.CacheMaxSize, time.Duration(config.AppConfig.CacheTTLSeconds)*time.Second)
	app.Use(responseCache.Handler())

	// Serve uploaded content files
	app.Static("/static", config.AppConfig.UploadDir)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	academicsRoutes.SetupAcademicsRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)
	contentRoutes.SetupContentRoutes(app)
	examRoutes.SetupExamRoutes(app)
	studentExamRoutes.SetupStudentExamRoutes(app)
	subscriptionRoutes.SetupSubscriptionRoutes(app)
	reportRoutes.SetupReportRoutes(app)

	utils.InitializeSubscriptionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
