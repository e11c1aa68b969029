package main

// @title Safety Microservice API
// @version 1.0.0
// @description Микросервис безопасности туристов: круговые геозоны, приём позиций
// @description с выводом статуса, алерты с реагированием, инциденты, цифровые
// @description личности и credentials, плоская модель ролей.
// @description
// @description Основные возможности:
// @description - Управление круговыми геозонами и проверка вхождения точки
// @description - Приём позиций туристов с автоматическим zone_breach алертом
// @description - Жизненный цикл алертов (created -> acknowledged -> resolved)
// @description - Жизненный цикл инцидентов (reported -> acknowledged -> resolved/dismissed)
// @description - Цифровые личности и детерминированные credentials
// @description - Роли ADMIN / ISSUER / RESPONDER

// @contact.name API Support
// @contact.email support@safety-microservice.com

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

	"github.com/google/uuid"
	_ "github.com/safety-microservice/docs"
	"github.com/safety-microservice/internal/config"
	httpDelivery "github.com/safety-microservice/internal/delivery/http"
	"github.com/safety-microservice/internal/delivery/http/handler"
	"github.com/safety-microservice/internal/pkg/logger"
	"github.com/safety-microservice/internal/repository/cache"
	"github.com/safety-microservice/internal/repository/postgres"
	redisrepo "github.com/safety-microservice/internal/repository/redis"
	"github.com/safety-microservice/internal/usecase"
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

	log.Info("Starting Safety Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("containment", cfg.Geofence.Containment),
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

	if err := db.Migrate("migrations"); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

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

	// 6. Initialize Repositories
	zoneRepo := postgres.NewZoneRepository(db)
	touristRepo := postgres.NewTouristRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	incidentRepo := postgres.NewIncidentRepository(db)
	identityRepo := postgres.NewIdentityRepository(db)
	credentialRepo := postgres.NewCredentialRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisrepo.NewStreamRepository(redisClient.Client(), log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	accessUC := usecase.NewAccessUseCase(roleRepo, streamRepo, log)

	geofenceUC := usecase.NewGeofenceUseCase(
		zoneRepo,
		cacheRepo,
		streamRepo,
		accessUC,
		log,
		usecase.ContainmentMode(cfg.Geofence.Containment),
		cfg.Cache.ZonesCacheTTL,
	)

	alertUC := usecase.NewAlertUseCase(alertRepo, streamRepo, accessUC, log)

	locationUC := usecase.NewLocationUseCase(
		touristRepo,
		locationRepo,
		geofenceUC,
		alertUC,
		streamRepo,
		accessUC,
		log,
	)

	identityUC := usecase.NewIdentityUseCase(identityRepo, streamRepo, log)
	credentialUC := usecase.NewCredentialUseCase(credentialRepo, streamRepo, accessUC, log)
	incidentUC := usecase.NewIncidentUseCase(
		incidentRepo,
		identityRepo,
		credentialRepo,
		streamRepo,
		accessUC,
		log,
	)

	log.Info("Use cases initialized")

	// 8. Bootstrap admin
	if cfg.Access.AdminActorID != "" {
		admin, err := uuid.Parse(cfg.Access.AdminActorID)
		if err != nil {
			log.Fatal("Invalid ADMIN_ACTOR_ID", zap.Error(err))
		}
		if err := accessUC.SeedAdmin(context.Background(), admin); err != nil {
			log.Fatal("Failed to seed admin", zap.Error(err))
		}
		log.Info("Bootstrap admin seeded", zap.String("actor", admin.String()))
	}

	// 9. Initialize HTTP Handlers
	zoneHandler := handler.NewZoneHandler(geofenceUC, log)
	touristHandler := handler.NewTouristHandler(locationUC, log)
	alertHandler := handler.NewAlertHandler(alertUC, log)
	incidentHandler := handler.NewIncidentHandler(incidentUC, log)
	identityHandler := handler.NewIdentityHandler(identityUC, log)
	credentialHandler := handler.NewCredentialHandler(credentialUC, log)
	roleHandler := handler.NewRoleHandler(accessUC, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		zoneHandler,
		touristHandler,
		alertHandler,
		incidentHandler,
		identityHandler,
		credentialHandler,
		roleHandler,
		db.Health,
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
