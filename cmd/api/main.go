package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"flashgen/internal/adapter"
	"flashgen/internal/adapter/llm"
	"flashgen/internal/cache"
	"flashgen/internal/config"
	"flashgen/internal/domain"
	"flashgen/internal/handler"
	"flashgen/internal/logger"
	"flashgen/internal/middleware"
	"flashgen/internal/parser"
	"flashgen/internal/service"
	"flashgen/internal/validation"

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
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize the model invoker
	openAIInvoker, err := llm.NewOpenAIInvoker(cfg.LLM, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create LLM invoker", zap.Error(err))
	}

	// Wrap the invoker with a Redis response cache when configured.
	// Without a Redis address every chunk goes straight to the LLM.
	var invoker domain.ModelInvoker = openAIInvoker
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
		invoker = adapter.NewCachedInvoker(openAIInvoker, cacheAdapter, openAIInvoker.Model(), cfg.Pipeline.CacheTTL, appLogger)
		appLogger.Info("LLM response cache enabled", zap.String("redis", cfg.Redis.Address))
	}

	// Initialize the pipeline
	responseParser := parser.New(appLogger)
	flashcardService := service.NewFlashcardService(invoker, responseParser, cfg.Pipeline, appLogger)
	appLogger.Info("FlashcardService initialized",
		zap.Int("chunk_size", cfg.Pipeline.ChunkSize),
		zap.Int("cards_per_chunk", cfg.Pipeline.CardsPerChunk),
		zap.Int("max_parallel", cfg.Pipeline.MaxParallel),
	)

	// Initialize handlers
	flashcardHandler := handler.NewFlashcardHandler(flashcardService, validation.NewValidator(), cfg.Server.ExportDir)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Get("/subjects", flashcardHandler.Subjects)
	apiGroup.Post("/flashcards", flashcardHandler.Generate)
	apiGroup.Post("/flashcards/upload", flashcardHandler.GenerateFromUpload)
	apiGroup.Post("/flashcards/export", flashcardHandler.Export)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port))
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
