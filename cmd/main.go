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

	"github.com/go-chi/chi/v5"

	"github.com/erzer12/y-ultimate/config"
	"github.com/erzer12/y-ultimate/db"
	"github.com/erzer12/y-ultimate/handlers"
	"github.com/erzer12/y-ultimate/live"
	"github.com/erzer12/y-ultimate/middleware"
	"github.com/erzer12/y-ultimate/repositories"
	"github.com/erzer12/y-ultimate/routes"
	"github.com/erzer12/y-ultimate/services"
	"github.com/erzer12/y-ultimate/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

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
	logger.Info("object storage initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live update hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	profileRepo := repositories.NewPostgresProfileRepository(dbConn)
	transferRepo := repositories.NewPostgresTransferRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	attendanceRepo := repositories.NewPostgresAttendanceRepository(dbConn)
	assessmentRepo := repositories.NewPostgresAssessmentRepository(dbConn)

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(tournamentRepo, teamRepo, matchRepo, registrationRepo, uploader, logger)
	teamService := services.NewTeamService(teamRepo)
	matchService := services.NewMatchService(dbConn, matchRepo, teamRepo, hub, logger)
	registrationService := services.NewRegistrationService(registrationRepo)
	profileService := services.NewProfileService(profileRepo, transferRepo, attendanceRepo, assessmentRepo, uploader, logger)
	sessionService := services.NewSessionService(sessionRepo, attendanceRepo, userRepo)
	attendanceService := services.NewAttendanceService(dbConn, attendanceRepo, sessionRepo)
	assessmentService := services.NewAssessmentService(assessmentRepo, profileRepo)

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	router := chi.NewRouter()
	routes.SetupRoutes(router, authenticator, routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Tournament:   handlers.NewTournamentHandler(tournamentService),
		Team:         handlers.NewTeamHandler(teamService),
		Match:        handlers.NewMatchHandler(matchService),
		Registration: handlers.NewRegistrationHandler(registrationService),
		Profile:      handlers.NewProfileHandler(profileService),
		Session:      handlers.NewSessionHandler(sessionService),
		Attendance:   handlers.NewAttendanceHandler(attendanceService),
		Assessment:   handlers.NewAssessmentHandler(assessmentService),
		WebSocket:    handlers.NewWebSocketHandler(hub, logger),
	}, cfg.CORSAllowedOrigins)
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
		logger.Info("server stopped")
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
