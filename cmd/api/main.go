package main

// @title Borehole Survey Microservice API
// @version 1.0.0
// @description Микросервис пространственного отбора скважин и построения геологических разрезов. Хранит точки инженерно-геологических изысканий в сеточных координатах и выводит производные координаты преобразованиями между системами.
// @description
// @description Основные возможности:
// @description - Пространственный отбор скважин полигоном, прямоугольником или полилинией с буферным коридором
// @description - Построение буферного коридора вокруг полилинии в виде GeoJSON-полигона
// @description - Прямая наилучшего приближения по выбранным скважинам и их проекции вдоль разреза
// @description - Пакетная загрузка скважин с асинхронным обогащением координат

// @contact.name API Support
// @contact.email support@borehole-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/borehole-microservice/docs/swagger"
	"github.com/borehole-microservice/internal/config"
	httpDelivery "github.com/borehole-microservice/internal/delivery/http"
	"github.com/borehole-microservice/internal/delivery/http/handler"
	"github.com/borehole-microservice/internal/geo/crs"
	"github.com/borehole-microservice/internal/geo/section"
	"github.com/borehole-microservice/internal/geo/spatial"
	"github.com/borehole-microservice/internal/pkg/logger"
	"github.com/borehole-microservice/internal/repository/cache"
	"github.com/borehole-microservice/internal/repository/postgres"
	redisRepo "github.com/borehole-microservice/internal/repository/redis"
	"github.com/borehole-microservice/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Borehole Survey Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	boreholeRepo := postgres.NewBoreholeRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize geometry engine
	transforms := crs.NewService(log, cfg.Engine.TransformCacheSize)
	corridors := spatial.NewCorridorBuilder(transforms, log, cfg.Engine.CorridorArcSegments)
	filter := spatial.NewFilter(corridors, log)
	sectionBuilder := section.NewBuilder(log)
	enricher := usecase.NewCoordinateEnricher(transforms, log)

	log.Info("Geometry engine initialized")

	// 8. Initialize use cases
	selectionUC := usecase.NewSelectionUseCase(
		boreholeRepo,
		cacheRepo,
		filter,
		corridors,
		enricher,
		log,
		cfg.Cache.SelectionCacheTTL,
	)

	sectionUC := usecase.NewSectionUseCase(
		boreholeRepo,
		cacheRepo,
		sectionBuilder,
		enricher,
		log,
		cfg.Cache.SectionCacheTTL,
	)

	boreholeUC := usecase.NewBoreholeUseCase(
		boreholeRepo,
		streamRepo,
		log,
	)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	selectionHandler := handler.NewSelectionHandler(selectionUC, log)
	sectionHandler := handler.NewSectionHandler(sectionUC, log)
	boreholeHandler := handler.NewBoreholeHandler(boreholeUC, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		selectionHandler,
		sectionHandler,
		boreholeHandler,
		db,
		redisClient,
	)

	log.Info("HTTP server initialized")

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
