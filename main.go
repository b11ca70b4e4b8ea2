package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"club-events/internal/auth"
	"club-events/internal/auth/auth_api"
	clubdb "club-events/internal/clubs/db"
	"club-events/internal/config"
	"club-events/internal/database/migrations"
	"club-events/internal/events"
	eventdb "club-events/internal/events/db"
	"club-events/internal/events/event_api"
	"club-events/internal/kafka"
	"club-events/internal/logger"
	"club-events/internal/utils"
)

func connectPostgres(cfg *config.Config, log *logger.Logger) *bun.DB {
	if cfg.Database.DSN == "" {
		log.Fatal("CONFIG", "POSTGRES_DSN not set")
	}

	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
			time.Sleep(2 * time.Second)
			continue
		}

		err = sqldb.Ping()
		if err == nil {
			break
		}

		log.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}

	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg *config.Config, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("DATABASE", fmt.Sprintf("Redis connection successful to %s", cfg.Redis.Addr))
	return client
}

func requestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.LogAPI(r.Method, r.URL.Path, time.Since(start))
		})
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	utils.WriteOK(w)
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting Club Events service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}
	cfg := config.Load()

	ctx := context.Background()
	bunDB := connectPostgres(cfg, log)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg, log)
	defer redisClient.Close()

	if cfg.Migrations.AutoMigrate {
		runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
			MigrationsDir: cfg.Migrations.Dir,
			AutoMigrate:   true,
		})
		if err := runner.MigrateUp(); err != nil {
			log.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
		}
		log.Info("DATABASE", "Migrations applied")
	}

	var producer events.Publisher
	if cfg.Kafka.Enabled {
		requiredTopics := []string{
			cfg.Kafka.Topics.EventCreated,
			cfg.Kafka.Topics.EventUpdated,
			cfg.Kafka.Topics.EventDeleted,
		}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, requiredTopics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer kafkaProducer.Close()
		producer = kafkaProducer
		log.Info("KAFKA", "Kafka producer initialized successfully")
	} else {
		log.Info("KAFKA", "Kafka disabled, event streaming off")
	}

	clubDB := &clubdb.DB{Bun: bunDB}
	eventDB := &eventdb.DB{Bun: bunDB}

	authService := auth.NewService(
		clubDB,
		auth.NewRedisStore(redisClient),
		cfg.Session.Secret,
		cfg.Session.TTL,
		cfg.Session.CookieName,
		cfg.Session.Secure,
		log,
	)

	eventService := events.NewService(eventDB, clubDB, producer, events.Topics{
		Created: cfg.Kafka.Topics.EventCreated,
		Updated: cfg.Kafka.Topics.EventUpdated,
		Deleted: cfg.Kafka.Topics.EventDeleted,
	}, log)

	authHandler := &auth_api.Handler{AuthService: authService, Logger: log}
	eventHandler := &event_api.Handler{EventService: eventService, Logger: log}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(requestLogger(log))

	if cfg.CORSOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{cfg.CORSOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}))
		log.Info("HTTP", fmt.Sprintf("CORS enabled for origin %s", cfg.CORSOrigin))
	}

	// --- Public Routes ---
	r.Get("/health", healthHandler)
	r.Get("/api/health", healthHandler)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/logout", authHandler.Logout)
	r.Get("/api/me", authHandler.Me)
	r.Get("/api/events", eventHandler.ListEvents)
	r.Get("/api/events/calendar", eventHandler.DownloadCalendar)
	r.Get("/api/events/{id}/qr", eventHandler.EventQR)

	// --- Protected Routes ---
	r.Group(func(r chi.Router) {
		r.Use(authService.Middleware())

		r.Get("/api/events/mine", eventHandler.ListMine)
		r.Post("/api/events", eventHandler.CreateEvent)
		r.Put("/api/events/{id}", eventHandler.UpdateEvent)
		r.Delete("/api/events/{id}", eventHandler.DeleteEvent)
	})
	log.Info("ROUTER", "Event routes registered under /api/events")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Club Events service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "Club Events service shutdown complete")
	}
}
