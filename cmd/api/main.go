// main.go
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/api"
	"github.com/Marga-Ghale/club-portal/internal/api/handlers"
	"github.com/Marga-Ghale/club-portal/internal/config"
	"github.com/Marga-Ghale/club-portal/internal/cron"
	"github.com/Marga-Ghale/club-portal/internal/db"
	"github.com/Marga-Ghale/club-portal/internal/email"
	"github.com/Marga-Ghale/club-portal/internal/metrics"
	"github.com/Marga-Ghale/club-portal/internal/notification"
	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/seed"
	"github.com/Marga-Ghale/club-portal/internal/service"
	"github.com/Marga-Ghale/club-portal/internal/session"
	"github.com/Marga-Ghale/club-portal/internal/socket"
	"github.com/Marga-Ghale/club-portal/pkg/logger"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	envErr := godotenv.Load()

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if envErr != nil {
		log.Info("no .env file found, using environment variables")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ============================================
	// Record store
	// ============================================
	var repos *repository.Repositories
	status := api.Status{Database: "memory", Sessions: "memory"}

	if cfg.DatabaseURL != "" {
		if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}

		pg, err := db.NewPostgresDB(ctx, cfg.DatabaseURL, log)
		if err != nil {
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pg.Close()

		repos = repository.NewPgRepositories(pg.Pool)
		status.Database = "connected"
	} else {
		log.Warn("DATABASE_URL not set, using in-memory record store")
		repos = repository.NewMemoryRepositories()
	}

	// ============================================
	// Session gate
	// ============================================
	store := session.NewMemoryStore()
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisDB(ctx, cfg.RedisURL, log)
		if err != nil {
			log.Warn("failed to connect to redis, keeping sessions in memory", zap.Error(err))
		} else {
			defer rdb.Close()
			store = session.NewRedisStore(rdb)
			status.Sessions = "redis"
		}
	}

	gate, err := session.NewGate(cfg.AdminPassword, cfg.SessionSecret, cfg.SessionTTL, store)
	if err != nil {
		log.Fatal("failed to initialize session gate", zap.Error(err))
	}
	if !gate.Enabled() {
		log.Warn("ADMIN_PASSWORD not set, admin login is disabled")
	}

	// ============================================
	// Email + dispatcher
	// ============================================
	sender, err := email.NewSender(cfg.EmailProvider, email.ConfigFrom(cfg))
	if err != nil {
		log.Fatal("failed to initialize email provider", zap.Error(err))
	}
	if sender == nil {
		log.Warn("email not configured", zap.String("provider", cfg.EmailProvider))
	} else {
		status.EmailConfigured = true
		log.Info("email provider initialized", zap.String("provider", cfg.EmailProvider))
	}

	m := metrics.New()
	dispatcher := notification.NewDispatcher(sender, email.NewRenderer(cfg.EmailFromName), notification.Options{
		Timeout:      cfg.EmailSendTimeout,
		Concurrency:  cfg.DispatchConcurrency,
		BatchTimeout: cfg.DispatchBatchTimeout,
		Observer:     m,
	})

	// ============================================
	// Live feed
	// ============================================
	hub := socket.NewHub(log)
	go hub.Run(ctx)
	broadcaster := socket.NewBroadcaster(hub)
	wsHandler := socket.NewHandler(hub, gate, cfg.CORSOrigins)

	announcer := notification.NewAnnouncer(repos.MemberRepo, repos.NotificationRepo, dispatcher, cfg.EmailFromName)
	announcer.SetPublisher(broadcaster)

	// ============================================
	// Seed Data (for development)
	// ============================================
	if !cfg.IsProduction() {
		if err := seed.SeedData(ctx, repos, log); err != nil {
			log.Warn("seeding failed", zap.Error(err))
		}
	}

	// ============================================
	// Services + handlers
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Repos:     repos,
		Announcer: announcer,
	})
	h := handlers.NewHandlers(services, gate, dispatcher)

	scheduler := cron.NewScheduler(repos.NotificationRepo, broadcaster, cfg.NotificationRetention, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	router := api.NewRouter(api.RouterDeps{
		Logger:      log,
		Handlers:    h,
		Gate:        gate,
		WebSocket:   wsHandler,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
		FunctionKey: cfg.FunctionKey,
		Status:      status,
	})

	// Create server. WriteTimeout outlasts the dispatcher's batch deadline so a
	// request that sends email can always write its response.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: dispatcher.BatchTimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
