package http

import (
	"context"
	"time"

	"github.com/coverage-microservice/internal/config"
	"github.com/coverage-microservice/internal/delivery/http/handler"
	"github.com/coverage-microservice/internal/delivery/http/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP server built on Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	coverageHandler *handler.CoverageHandler
	siteHandler     *handler.SiteHandler
}

// NewServer creates the HTTP server with middleware and routes wired up
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	coverageHandler *handler.CoverageHandler,
	siteHandler *handler.SiteHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Coverage Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		coverageHandler: coverageHandler,
		siteHandler:     siteHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Coverage computation
	api.Post("/coverage", s.coverageHandler.Compute)

	// Site registry
	api.Post("/sites", s.siteHandler.Create)
	api.Get("/sites", s.siteHandler.List)
	api.Get("/sites/:id", s.siteHandler.GetByID)
	api.Delete("/sites/:id", s.siteHandler.Delete)
	api.Post("/sites/:id/coverage", s.siteHandler.ComputeCoverage)
}

// Start - starts the HTTP server
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown of the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
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
