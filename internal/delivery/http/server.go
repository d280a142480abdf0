package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"github.com/trip-planner-backend/internal/config"
	"github.com/trip-planner-backend/internal/delivery/http/handler"
	"github.com/trip-planner-backend/internal/delivery/http/middleware"
	"go.uber.org/zap"
)

// Server - Fiber-based HTTP server
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	flightHandler *handler.FlightHandler
	poiHandler    *handler.POIHandler
}

func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	flightHandler *handler.FlightHandler,
	poiHandler *handler.POIHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Trip Planner Backend",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		flightHandler: flightHandler,
		poiHandler:    poiHandler,
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

	// Flight routes
	api.Get("/flights/search", s.flightHandler.SearchFlights)
	api.Get("/flights/cheapest-cities", s.flightHandler.CheapestCities)

	// POI routes
	api.Get("/pois/status", s.poiHandler.SyncStatus)
	api.Patch("/pois/:id/google-place-id", s.poiHandler.PatchGooglePlaceID)
}

// Start - start listening on the configured address
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown
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
