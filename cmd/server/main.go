package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AnshRaj112/esangrahan-backend/internal/config"
	"github.com/AnshRaj112/esangrahan-backend/internal/database"
	"github.com/AnshRaj112/esangrahan-backend/internal/handlers"
	"github.com/AnshRaj112/esangrahan-backend/internal/logger"
	"github.com/AnshRaj112/esangrahan-backend/internal/middleware"
	"github.com/AnshRaj112/esangrahan-backend/internal/repository"
	"github.com/AnshRaj112/esangrahan-backend/internal/routes"
	"github.com/AnshRaj112/esangrahan-backend/internal/services"
	"github.com/AnshRaj112/esangrahan-backend/pkg/response"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	zl, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if envErr != nil {
		zl.Debug("no .env file found")
	}
	for _, key := range cfg.Missing() {
		zl.Warn("required environment variable not set", zap.String("key", key))
	}
	if cfg.JWTSecret == "" && cfg.IsProduction() {
		zl.Fatal("JWT_SECRET must be set in production")
	}

	// MongoDB
	if err := database.Connect(cfg.MongoURI); err != nil {
		zl.Fatal("failed to create MongoDB client", zap.Error(err))
	}
	defer func() { _ = database.Disconnect() }()

	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := database.Ping(startCtx); err != nil {
		zl.Warn("MongoDB is not reachable, requests needing it will fail until it is", zap.Error(err))
	} else {
		zl.Info("connected to MongoDB", zap.String("database", database.DB.Name()))
		if err := database.EnsureIndexes(startCtx, database.DB); err != nil {
			zl.Warn("failed to ensure MongoDB indexes", zap.Error(err))
		}
	}
	cancel()

	// Optional Redis: shared auth attempt counters
	var attempts middleware.AttemptCounter
	if cfg.RedisURI != "" {
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			zl.Warn("Redis unavailable, shared auth rate limiting disabled", zap.Error(err))
		} else {
			defer func() { _ = database.DisconnectRedis() }()
			attempts = middleware.NewRedisCounter(database.RedisClient)
			zl.Info("connected to Redis")
		}
	}

	// Optional PostgreSQL: admin audit log
	var audit services.AuditLog = services.NopAuditLog{}
	if cfg.PostgresURI != "" {
		if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
			zl.Warn("PostgreSQL unavailable, admin audit log disabled", zap.Error(err))
		} else {
			defer func() { _ = database.DisconnectPostgres() }()
			audit = repository.NewAuditLog(database.PostgresDB)
			zl.Info("connected to PostgreSQL audit log")
		}
	}

	// Stores and services
	users := repository.NewUserStore(database.DB)
	admins := repository.NewAdminStore(database.DB)
	points := repository.NewCollectionPointStore(database.DB)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTExpire)
	authSvc := services.NewAuthService(users, admins, tokens, cfg.AdminSecretKey, zl)
	pointSvc := services.NewCollectionPointService(points, zl)
	adminSvc := services.NewAdminService(points, users, audit, zl)

	rd := &response.Renderer{Log: zl, Production: cfg.IsProduction()}

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.Recoverer(rd))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost) {
			r.Use(mw)
		}
		zl.Info("production security enabled")
	}
	if attempts != nil {
		r.Use(middleware.AuthRateLimit(attempts, zl))
	}

	routes.SetupRoutes(r, routes.Deps{
		Auth:         handlers.NewAuthHandler(authSvc, rd),
		Points:       handlers.NewCollectionPointHandler(pointSvc, rd),
		Admin:        handlers.NewAdminHandler(adminSvc, rd),
		Protect:      middleware.Protect(tokens, users, rd),
		ProtectAdmin: middleware.ProtectAdmin(tokens, admins, rd),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		zl.Info("e-waste backend listening",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zl.Info("shutting down")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
