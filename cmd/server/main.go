package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	goredis "github.com/redis/go-redis/v9"

	"hail/internal/app"
	"hail/internal/config"
	"hail/internal/geo"
	"hail/internal/handler"
	internalRedis "hail/internal/redis"
	"hail/internal/repository/postgres"
	"hail/internal/service"
	"hail/internal/ws"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *goredis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Redis-backed stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	presenceStore := internalRedis.NewPresenceStore(redisClient)

	// Repositories.
	userRepo := postgres.NewUserRepository(db)
	captainRepo := postgres.NewCaptainRepository(db)
	rideRepo := postgres.NewRideRepository(db)

	// Geocoding provider.
	provider := geo.NewClient(cfg.Geo.BaseURL, cfg.Geo.Timeout)

	// Live-connection registry.
	hub := ws.NewHub()

	// Services.
	fareService := service.NewFareService(provider)
	matchingService := service.NewMatchingService(locationStore, presenceStore)
	rideService := service.NewRideService(rideRepo, lockStore, fareService)
	captainService := service.NewCaptainService(locationStore, presenceStore)
	authService := service.NewAuthService(userRepo, captainRepo, cfg.JWT.Secret, cfg.JWT.Expiry)
	notifier := service.NewNotifier(hub)

	// Handlers.
	rideHandler := handler.NewRideHandler(rideService, fareService, matchingService, provider, notifier)
	geoHandler := handler.NewGeoHandler(provider)
	authHandler := handler.NewAuthHandler(authService)
	wsHandler := handler.NewWSHandler(hub, captainService)

	// Router.
	router := app.NewRouter(app.RouterDeps{
		RideHandler: rideHandler,
		GeoHandler:  geoHandler,
		AuthHandler: authHandler,
		WSHandler:   wsHandler,
		Verifier:    authService,
		RedisClient: redisClient,
		NewRelicApp: nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
