package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/reelsmith/api/internal/client"
	"github.com/reelsmith/api/internal/config"
	"github.com/reelsmith/api/internal/handler"
	"github.com/reelsmith/api/internal/media"
	"github.com/reelsmith/api/internal/middleware"
	"github.com/reelsmith/api/internal/render"
	"github.com/reelsmith/api/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Redis backs rate limiting only; without it the limiter is a
	// pass-through
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("Warning: Redis not available: %v", err)
		}
	}

	// Initialize clients
	openaiClient := client.NewOpenAIClient(&cfg.OpenAI)
	ffmpeg := media.New(&cfg.Media)
	cardRenderer := render.NewCardRenderer(&cfg.Card)

	// Initialize services
	codingService := service.NewCodingChallengeService(cfg, openaiClient, cardRenderer, ffmpeg)
	captionService := service.NewReadCaptionService(cfg, openaiClient, ffmpeg)

	// Initialize handlers
	generateHandler := handler.NewGenerateHandler(codingService, captionService, cfg.Media.OutputDir)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(redisClient)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		// Pipeline runs are long; never cut a generation off mid-encode
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"services": fiber.Map{
				"openai": openaiClient.IsConfigured(),
				"redis":  redisClient != nil,
			},
		})
	})

	// API routes
	api := app.Group("/api")

	generate := api.Group("/generate", rateLimiter.GenerateLimit(cfg.RateLimit.GeneratePerHour))
	generate.Post("/coding-challenge", generateHandler.CodingChallenge)
	generate.Post("/read-caption", generateHandler.ReadCaption)

	// Finished reels are served straight from the output root
	app.Static("/", cfg.Media.OutputDir, fiber.Static{
		Browse: false,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	addr := ":" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	if err := app.Listen(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
