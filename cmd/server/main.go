package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memori-server/internal/config"
	"memori-server/internal/database"
	"memori-server/internal/handler"
	"memori-server/internal/logger"
	appMiddleware "memori-server/internal/middleware"
	"memori-server/internal/openai"
	"memori-server/internal/repository"
	"memori-server/internal/service"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	log.Println("Starting memori-server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	if err := database.RunMigrations(cfg.GetDSN(), cfg.MigrationsDir, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	dbPool, err := database.NewPool(context.Background(), cfg)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()
	zapLogger.Info("Connected to PostgreSQL")

	// Wire dependencies
	ideaRepo := repository.NewPgIdeaRepository(dbPool, zapLogger)
	historyRepo := repository.NewPgBreakdownHistoryRepository(dbPool, zapLogger)
	coinRepo := repository.NewPgCoinRepository(dbPool, zapLogger)

	gateway := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.OpenAITimeout, zapLogger)

	breakdownService := service.NewBreakdownService(ideaRepo, historyRepo, coinRepo, gateway, zapLogger)
	ideaService := service.NewIdeaService(ideaRepo, zapLogger)
	breakdownHandler := handler.NewBreakdownHandler(breakdownService, ideaService, zapLogger, cfg.JWTSecret)

	// Echo setup
	e := echo.New()
	e.HideBanner = true
	e.Use(appMiddleware.EchoZapLogger(zapLogger))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	breakdownHandler.RegisterRoutes(e)

	go func() {
		zapLogger.Info("HTTP server listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutdown signal received, starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		zapLogger.Error("Error during Echo shutdown", zap.Error(err))
	}

	log.Println("memori-server stopped")
}
