package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"mentorlab/internal/cache"
	"mentorlab/internal/config"
	"mentorlab/internal/database"
	"mentorlab/internal/domain"
	"mentorlab/internal/genai"
	"mentorlab/internal/handler"
	"mentorlab/internal/logger"
	"mentorlab/internal/middleware"
	"mentorlab/internal/repository"
	"mentorlab/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Successfully connected to database")

	quizRepository := repository.NewQuizDatabaseAdapter(db)
	resultRepository := repository.NewResultDatabaseAdapter(db)
	studentRepository := repository.NewStudentDatabaseAdapter(db)

	// Quiz cache is optional: without Redis the service reads straight
	// through to the database.
	var quizCache domain.QuizCache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis")
		quizCache = cache.NewRedisQuizCache(redisClient, cfg.Redis.QuizTTL)
	} else {
		appLogger.Warn("Redis not configured, quiz cache disabled")
	}

	generator, err := genai.NewClient(genai.ClientConfig{
		APIKey:             cfg.Gemini.APIKey,
		BaseURL:            cfg.Gemini.BaseURL,
		Model:              cfg.Gemini.Model,
		MinRequestInterval: cfg.Gemini.MinRequestInterval,
		CallTimeout:        cfg.Gemini.GenerateTimeout,
	})
	if err != nil {
		appLogger.Fatal("Failed to create generative API client", zap.Error(err))
	}
	appLogger.Info("Generative API client initialized", zap.String("model", cfg.Gemini.Model))

	quizService := service.NewQuizService(quizRepository, resultRepository, studentRepository, generator, quizCache)
	quizHandler := handler.NewQuizHandler(quizService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	protected := middleware.Protected(cfg.JWT.Secret)

	apiGroup := app.Group("/api")

	quizGroup := apiGroup.Group("/quizzes", protected)
	quizGroup.Post("/generate", middleware.RequireRole("student"), quizHandler.GenerateQuiz)
	quizGroup.Post("/", middleware.RequireRole("teacher"), quizHandler.CreateQuiz)
	quizGroup.Get("/:id", quizHandler.GetQuiz)
	quizGroup.Post("/:id/submit", middleware.RequireRole("student"), quizHandler.SubmitQuiz)

	studentGroup := apiGroup.Group("/students", protected)
	studentGroup.Get("/me/quizzes", quizHandler.GetMyQuizzes)
	studentGroup.Get("/me/results", quizHandler.GetMyResults)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
