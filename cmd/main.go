package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/disaster_incident_system/internal/auth"
	"github.com/shenikar/disaster_incident_system/internal/config"
	v1 "github.com/shenikar/disaster_incident_system/internal/handler/http/v1"
	"github.com/shenikar/disaster_incident_system/internal/notify"
	"github.com/shenikar/disaster_incident_system/internal/observability"
	"github.com/shenikar/disaster_incident_system/internal/repository"
	"github.com/shenikar/disaster_incident_system/internal/service"
	"github.com/shenikar/disaster_incident_system/pkg/logger"
	"github.com/shenikar/disaster_incident_system/pkg/postgres"
	redisclient "github.com/shenikar/disaster_incident_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/disaster_incident_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Disaster Incident System API
// @version 1.0
// @description Intake, triage and lifecycle tracking of disaster incident reports.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()

	// Хранилище инцидентов
	var incidentRepo service.IncidentRepository
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}

		dbpool, err := postgres.NewPostgresDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		incidentRepo = repository.NewIncidentRepository(dbpool)
	default:
		log.Warn("Using in-memory incident store, data will be lost on restart")
		incidentRepo = repository.NewMemoryIncidentRepository(clock)
	}

	// Redis нужен кэшу и очереди вебхуков
	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")
	}

	var incidentCache service.IncidentCache
	if cfg.CacheEnabled {
		incidentCache = repository.NewIncidentCache(redisClient, cfg.CacheTTL)
	}

	metrics := observability.NewMetrics()

	// Издатель событий об инцидентах
	var publisher notify.Publisher
	var webhookWorker *notify.WebhookWorker
	switch cfg.EventsSink {
	case config.EventsSinkRedis:
		publisher = notify.NewRedisPublisher(redisClient)
		webhookWorker = notify.NewWebhookWorker(redisClient, metrics, log, cfg)
		webhookWorker.Start(ctx)
	case config.EventsSinkKafka:
		kafkaPublisher := notify.NewKafkaPublisher(cfg)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.WithError(err).Error("Failed to close Kafka writer")
			}
		}()
		publisher = kafkaPublisher
	default:
		publisher = notify.NopPublisher{}
	}

	// Политика доступа
	policy, err := auth.NewPolicy()
	if err != nil {
		log.Fatalf("Failed to build access policy: %v", err)
	}

	// Периодический снимок статусов в метриках
	snapshot := observability.NewStatusSnapshot(incidentRepo, metrics, log)
	if err := snapshot.Start(ctx, cfg.MetricsSnapshotSchedule); err != nil {
		log.Fatalf("Failed to start metrics snapshot: %v", err)
	}
	defer snapshot.Stop()

	// Инициализация сервисов
	incidentService := service.NewIncidentService(incidentRepo, incidentCache, publisher, policy, clock, metrics, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.CORSMiddleware(cfg))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Swagger UI и метрики Prometheus
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	cancel()

	// Воркер должен вернуть событие в очередь до закрытия Redis клиента
	if webhookWorker != nil {
		webhookWorker.Wait()
	}

	log.Info("Server gracefully stopped")
}
