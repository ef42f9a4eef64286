package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/borehole-microservice/internal/config"
	"github.com/borehole-microservice/internal/delivery/http/handler"
	"github.com/borehole-microservice/internal/delivery/http/middleware"
	"github.com/borehole-microservice/internal/pkg/errors"
)

// HealthChecker - проверка доступности зависимости (БД, Redis)
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	selectionHandler *handler.SelectionHandler
	sectionHandler   *handler.SectionHandler
	boreholeHandler  *handler.BoreholeHandler

	dbHealth    HealthChecker
	redisHealth HealthChecker
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	selectionHandler *handler.SelectionHandler,
	sectionHandler *handler.SectionHandler,
	boreholeHandler *handler.BoreholeHandler,
	dbHealth HealthChecker,
	redisHealth HealthChecker,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Borehole Survey Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:              app,
		config:           cfg,
		logger:           logger,
		selectionHandler: selectionHandler,
		sectionHandler:   sectionHandler,
		boreholeHandler:  boreholeHandler,
		dbHealth:         dbHealth,
		redisHealth:      redisHealth,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.health)

	// Selection routes
	api.Post("/selection", s.selectionHandler.SelectPoints)
	api.Post("/corridor", s.selectionHandler.BuildCorridor)

	// Section routes
	api.Post("/section", s.sectionHandler.BuildSection)

	// Borehole routes
	api.Get("/boreholes", s.boreholeHandler.List)
	api.Post("/boreholes", s.boreholeHandler.CreateBatch)
	api.Get("/boreholes/:id", s.boreholeHandler.GetByID)
}

func (s *Server) health(c *fiber.Ctx) error {
	status := "healthy"
	checks := fiber.Map{}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if s.dbHealth != nil {
		if err := s.dbHealth.Health(ctx); err != nil {
			status = "degraded"
			checks["postgres"] = err.Error()
		} else {
			checks["postgres"] = "ok"
		}
	}
	if s.redisHealth != nil {
		if err := s.redisHealth.Health(ctx); err != nil {
			status = "degraded"
			checks["redis"] = err.Error()
		} else {
			checks["redis"] = "ok"
		}
	}

	return c.JSON(fiber.Map{
		"status": status,
		"checks": checks,
		"time":   time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		if appErr, ok := errors.AsAppError(err); ok {
			code = appErr.StatusCode
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
			return c.Status(code).JSON(fiber.Map{"error": appErr})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
