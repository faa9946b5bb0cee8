package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"nelson-chat/internal/adapter/chat_http"
	"nelson-chat/internal/adapter/gemini"
	"nelson-chat/internal/adapter/repository"
	"nelson-chat/internal/infra"
	"nelson-chat/internal/infra/config"
	"nelson-chat/internal/infra/logger"
	"nelson-chat/internal/infra/otel"
	appmiddleware "nelson-chat/internal/middleware"
	"nelson-chat/internal/usecase"
)

func main() {
	// 1. Load Config
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize Telemetry & Logger
	otelShutdown, err := otel.InitProvider(context.Background(), otel.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init telemetry: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(ctx)
	}()

	log := logger.NewWithOTel(cfg.OTelEnabled)
	slog.SetDefault(log)

	// 3. Initialize DB
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	dbPool, err := infra.NewPostgresDB(context.Background(), dsn)
	if err != nil {
		log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Initialize Adapters
	chapterRepo := repository.NewChapterChunkRepository(dbPool)
	textbookRepo := repository.NewNelsonChunkRepository(dbPool)
	generator := gemini.NewGenerator(
		cfg.GeminiBaseURL,
		cfg.GeminiModel,
		cfg.GeminiAPIKey,
		time.Duration(cfg.GeminiTimeout)*time.Second,
		log,
	)

	// 5. Initialize Usecases
	retrieveUsecase := usecase.NewRetrievePassagesUsecase(
		chapterRepo,
		textbookRepo,
		cfg.SearchLimit,
		time.Duration(cfg.SearchTimeout)*time.Second,
		log,
	)
	promptBuilder := usecase.NewGroundedPromptBuilder()
	answerUsecase := usecase.NewAnswerQuestionUsecase(retrieveUsecase, promptBuilder, generator, log)

	// 6. Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("http_request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: chat_http.AllowOrigins,
		AllowHeaders: chat_http.AllowHeaders,
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
	}))

	rateLimiter := appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	// 7. Initialize Handlers
	handler := chat_http.NewHandler(answerUsecase, logger.NewContextLogger("nelson-chat"))

	// 8. Register Routes
	e.POST("/nelson-chat", handler.Chat, rateLimiter.Middleware())

	// 9. Health Checks
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if err := dbPool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db down", "error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	// 10. Start Server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info("Starting server", "addr", addr, "model", generator.Version())
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	// 11. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
