// Package main provides the entry point for the QRTrack service.
//
//	@title			QRTrack API
//	@version		1.0.0
//	@description	Trackable short-link QR codes with scan analytics.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Authorization header. Format: "Bearer {token}"
package main

import (
	"QRTrack-Backend/internal/auth"
	"QRTrack-Backend/internal/config"
	"QRTrack-Backend/internal/database"
	"QRTrack-Backend/internal/geoip"
	httpHandler "QRTrack-Backend/internal/handler/http"
	"QRTrack-Backend/internal/repository/postgres"
	"QRTrack-Backend/internal/service"
	"QRTrack-Backend/pkg/logger"
	"QRTrack-Backend/pkg/useragent"
	"context"
	lg "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "QRTrack-Backend/docs" // swagger docs
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)
	defer func() {
		if err := log.Sync(); err != nil {
			lg.Printf("ERROR: failed to sync zap logger: %v\n", err)
		}
	}()

	log.Info("starting QRTrack service", zap.String("env", cfg.Env))

	db, err := database.NewConnection(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("failed to close database connection", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, log); err != nil {
			log.Fatal("failed to run database migrations", zap.Error(err))
		}
	} else {
		log.Info("skipping database migrations (auto_migrate: false)")
	}

	// Device classification capability
	uaParser, err := useragent.New(cfg.UserAgent.RegexesPath, log)
	if err != nil {
		log.Warn("failed to load User-Agent regexes, using embedded set", zap.Error(err))
		uaParser = useragent.NewDefault(log)
	}

	// Geo-lookup capability; scans record absent locations when disabled
	var geoResolver geoip.Resolver = geoip.NoopResolver{}
	if cfg.GeoIP.DBPath != "" {
		maxmind, err := geoip.New(cfg.GeoIP.DBPath, log)
		if err != nil {
			log.Warn("failed to load GeoIP database, geo lookup disabled", zap.Error(err))
		} else {
			geoResolver = maxmind
			defer func() {
				if err := maxmind.Close(); err != nil {
					log.Error("failed to close GeoIP database", zap.Error(err))
				}
			}()
		}
	} else {
		log.Info("no GeoIP database configured, geo lookup disabled")
	}

	storage := postgres.New(db, log)
	registry := service.NewCodeRegistry(storage, &cfg.QRCode, log)
	recorder := service.NewScanRecorder(storage, geoResolver, uaParser, log)
	aggregator := service.NewAggregator(storage, log)

	jwtService := auth.NewJWTService(&auth.JWTConfig{
		SecretKey:            []byte(cfg.Auth.JWTSecret),
		AccessTokenDuration:  mustParseDuration(cfg.Auth.AccessTokenTTL, 15*time.Minute, log),
		RefreshTokenDuration: mustParseDuration(cfg.Auth.RefreshTokenTTL, 7*24*time.Hour, log),
		Issuer:               cfg.Auth.Issuer,
	})
	passwordService := auth.NewPasswordService()

	server := httpHandler.NewServer(
		storage,
		registry,
		recorder,
		aggregator,
		jwtService,
		passwordService,
		log,
		cfg.QRCode.BaseURL,
	)

	httpServer := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      server.SetupRoutes(),
		ReadTimeout:  mustParseDuration(cfg.HTTPServer.ReadTimeout, 30*time.Second, log),
		WriteTimeout: mustParseDuration(cfg.HTTPServer.WriteTimeout, 30*time.Second, log),
		IdleTimeout:  mustParseDuration(cfg.HTTPServer.IdleTimeout, 60*time.Second, log),
	}

	go func() {
		log.Info("starting HTTP server", zap.String("address", cfg.HTTPServer.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down QRTrack service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown HTTP server", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}
}

func mustParseDuration(value string, fallback time.Duration, log *zap.Logger) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Warn("failed to parse duration, using fallback",
			zap.String("value", value),
			zap.Duration("fallback", fallback))
		return fallback
	}
	return d
}
