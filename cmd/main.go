package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/pickup-server/config"
	"github.com/Dosada05/pickup-server/db"
	"github.com/Dosada05/pickup-server/handlers"
	"github.com/Dosada05/pickup-server/live"
	"github.com/Dosada05/pickup-server/repositories"
	api "github.com/Dosada05/pickup-server/routes"
	"github.com/Dosada05/pickup-server/services"
	"github.com/Dosada05/pickup-server/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

// How often stale pending team challenges are swept.
const sweeperInterval = 1 * time.Hour

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("live hub started")

	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	sportRepo := repositories.NewPostgresSportRepository(dbConn)
	communityRepo := repositories.NewPostgresCommunityRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	rsvpRepo := repositories.NewPostgresRSVPRepository(dbConn)
	friendRepo := repositories.NewPostgresFriendRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRequestRepo := repositories.NewPostgresMatchRequestRepository(dbConn)
	logger.Info("repositories initialized")

	// Match dates and times are stored and compared in UTC.
	loc := time.UTC

	authService := services.NewAuthService(profileRepo)
	profileService := services.NewProfileService(profileRepo, uploader)
	sportService := services.NewSportService(sportRepo)
	communityService := services.NewCommunityService(communityRepo)
	matchService := services.NewMatchService(matchRepo, sportRepo, communityRepo, rsvpRepo, profileRepo, loc, logger)
	feedService := services.NewFeedService(matchRepo, sportRepo, profileRepo, rsvpRepo, friendRepo, loc, logger)
	rsvpService := services.NewRSVPService(rsvpRepo, matchRepo, wsHub, logger)
	friendService := services.NewFriendService(friendRepo, profileRepo, logger)
	teamService := services.NewTeamService(teamRepo, profileRepo, sportRepo)
	matchRequestService := services.NewMatchRequestService(matchRequestRepo, teamRepo, profileRepo, matchRepo, loc, logger)
	logger.Info("services initialized")

	go func() {
		ticker := time.NewTicker(sweeperInterval)
		defer ticker.Stop()
		logger.Info("stale challenge sweeper started", slog.Duration("interval", sweeperInterval))
		for range ticker.C {
			expired, err := matchRequestService.ExpireStale(context.Background())
			if err != nil {
				logger.Error("stale challenge sweep failed", slog.Any("error", err))
				continue
			}
			if expired > 0 {
				logger.Info("stale challenges declined", slog.Int64("count", expired))
			}
		}
	}()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	profileHandler := handlers.NewProfileHandler(profileService)
	sportHandler := handlers.NewSportHandler(sportService)
	communityHandler := handlers.NewCommunityHandler(communityService)
	matchHandler := handlers.NewMatchHandler(matchService, feedService)
	rsvpHandler := handlers.NewRSVPHandler(rsvpService)
	friendHandler := handlers.NewFriendHandler(friendService)
	teamHandler := handlers.NewTeamHandler(teamService)
	matchRequestHandler := handlers.NewMatchRequestHandler(matchRequestService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		profileHandler,
		sportHandler,
		communityHandler,
		matchHandler,
		rsvpHandler,
		friendHandler,
		teamHandler,
		matchRequestHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}
