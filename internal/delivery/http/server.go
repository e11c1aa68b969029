package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/safety-microservice/internal/config"
	"github.com/safety-microservice/internal/delivery/http/handler"
	"github.com/safety-microservice/internal/delivery/http/middleware"
	"github.com/safety-microservice/internal/pkg/errors"
	"github.com/safety-microservice/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	zoneHandler       *handler.ZoneHandler
	touristHandler    *handler.TouristHandler
	alertHandler      *handler.AlertHandler
	incidentHandler   *handler.IncidentHandler
	identityHandler   *handler.IdentityHandler
	credentialHandler *handler.CredentialHandler
	roleHandler       *handler.RoleHandler

	healthCheck func(ctx context.Context) error
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	zoneHandler *handler.ZoneHandler,
	touristHandler *handler.TouristHandler,
	alertHandler *handler.AlertHandler,
	incidentHandler *handler.IncidentHandler,
	identityHandler *handler.IdentityHandler,
	credentialHandler *handler.CredentialHandler,
	roleHandler *handler.RoleHandler,
	healthCheck func(ctx context.Context) error,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Safety Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		zoneHandler:       zoneHandler,
		touristHandler:    touristHandler,
		alertHandler:      alertHandler,
		incidentHandler:   incidentHandler,
		identityHandler:   identityHandler,
		credentialHandler: credentialHandler,
		roleHandler:       roleHandler,
		healthCheck:       healthCheck,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(middleware.Actor())
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
	api.Get("/health", func(c *fiber.Ctx) error {
		if s.healthCheck != nil {
			if err := s.healthCheck(c.Context()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unhealthy",
					"time":   time.Now(),
				})
			}
		}
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Zone routes
	api.Post("/zones", s.zoneHandler.CreateZone)
	api.Get("/zones", s.zoneHandler.ListZones)
	api.Get("/zones/:id", s.zoneHandler.GetZone)
	api.Put("/zones/:id", s.zoneHandler.UpdateZone)
	api.Patch("/zones/:id/active", s.zoneHandler.SetZoneActive)

	// Tourist routes
	api.Post("/tourists", s.touristHandler.RegisterTourist)
	api.Get("/tourists/:id", s.touristHandler.GetTourist)
	api.Patch("/tourists/:id/active", s.touristHandler.SetTouristActive)
	api.Get("/tourists/:id/history", s.touristHandler.ListHistory)

	// Location ingestion
	api.Post("/locations", s.touristHandler.RecordLocation)

	// Alert routes
	api.Post("/alerts", s.alertHandler.TriggerAlert)
	api.Get("/alerts/:id", s.alertHandler.GetAlert)
	api.Post("/alerts/:id/acknowledge", s.alertHandler.AcknowledgeAlert)
	api.Post("/alerts/:id/resolve", s.alertHandler.ResolveAlert)
	api.Get("/subjects/:subject_id/alerts", s.alertHandler.ListAlertsBySubject)

	// Emergency response routes
	api.Post("/alerts/:id/responses", s.alertHandler.DispatchResponse)
	api.Patch("/alerts/:id/responses/:index", s.alertHandler.UpdateResponseStatus)

	// Incident routes
	api.Post("/incidents", s.incidentHandler.ReportIncident)
	api.Get("/incidents", s.incidentHandler.ListIncidents)
	api.Get("/incidents/:id", s.incidentHandler.GetIncident)
	api.Post("/incidents/:id/acknowledge", s.incidentHandler.AcknowledgeIncident)
	api.Post("/incidents/:id/resolve", s.incidentHandler.ResolveIncident)
	api.Post("/incidents/:id/credential", s.incidentHandler.LinkCredential)

	// Identity routes
	api.Post("/identity", s.identityHandler.RegisterIdentity)
	api.Put("/identity", s.identityHandler.UpdateIdentity)
	api.Delete("/identity", s.identityHandler.DeactivateIdentity)
	api.Get("/identity/:actor", s.identityHandler.GetIdentity)

	// Credential routes
	api.Post("/credentials", s.credentialHandler.IssueCredential)
	api.Post("/credentials/find-id", s.credentialHandler.FindCredentialID)
	api.Get("/credentials/:id", s.credentialHandler.GetCredential)
	api.Post("/credentials/:id/revoke", s.credentialHandler.RevokeCredential)

	// Role routes
	api.Post("/roles/grant", s.roleHandler.GrantRole)
	api.Post("/roles/revoke", s.roleHandler.RevokeRole)
	api.Get("/roles/:role/:actor", s.roleHandler.HasRole)
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

		if appErr, ok := err.(*errors.AppError); ok {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", appErr.StatusCode),
				zap.Error(err),
			)
			return utils.SendError(c, appErr)
		}

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
