package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/doi-radiologia/portal-api/internal/blob/gridfs"
	"github.com/doi-radiologia/portal-api/internal/config"
	"github.com/doi-radiologia/portal-api/internal/email"
	authHandler "github.com/doi-radiologia/portal-api/internal/handler/auth"
	contentHandler "github.com/doi-radiologia/portal-api/internal/handler/content"
	healthHandler "github.com/doi-radiologia/portal-api/internal/handler/health"
	patientHandler "github.com/doi-radiologia/portal-api/internal/handler/patient"
	portalHandler "github.com/doi-radiologia/portal-api/internal/handler/portal"
	profileHandler "github.com/doi-radiologia/portal-api/internal/handler/profile"
	studyHandler "github.com/doi-radiologia/portal-api/internal/handler/study"
	"github.com/doi-radiologia/portal-api/internal/middleware"
	"github.com/doi-radiologia/portal-api/internal/repository/postgres"
	redisRepo "github.com/doi-radiologia/portal-api/internal/repository/redis"
	"github.com/doi-radiologia/portal-api/internal/router"
	authService "github.com/doi-radiologia/portal-api/internal/service/auth"
	contentService "github.com/doi-radiologia/portal-api/internal/service/content"
	patientService "github.com/doi-radiologia/portal-api/internal/service/patient"
	profileService "github.com/doi-radiologia/portal-api/internal/service/profile"
	studyService "github.com/doi-radiologia/portal-api/internal/service/study"
	"github.com/doi-radiologia/portal-api/pkg/auth"
	"github.com/doi-radiologia/portal-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	blobStore, err := gridfs.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.DB, cfg.Mongo.Bucket)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to blob storage")
	}

	tokenRepo, err := redisRepo.NewTokenRepository(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Repositories
	profileRepo := postgres.NewProfileRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	studyRepo := postgres.NewStudyRepository(db)
	contentRepo := postgres.NewContentRepository(db)

	// Services
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})
	hasher := security.NewBcryptHasher(0)
	emailSvc := email.NewService(cfg.SMTP, cfg.Server.PublicURL)
	oauthClient := authService.NewOAuthClient(cfg.OAuth)

	authSvc := authService.NewService(profileRepo, tokenRepo, jwtSvc, hasher, emailSvc, oauthClient)
	profileSvc := profileService.NewService(profileRepo)
	patientSvc := patientService.NewService(patientRepo)
	studySvc := studyService.NewService(studyRepo, blobStore, cfg.Server.PublicURL)
	contentSvc := contentService.NewService(contentRepo)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc, profileSvc)

	authH := authHandler.NewHandler(authSvc)
	profileH := profileHandler.NewHandler(profileSvc)
	patientH := patientHandler.NewHandler(patientSvc)
	studyH := studyHandler.NewHandler(studySvc)
	contentH := contentHandler.NewHandler(contentSvc)
	portalH := portalHandler.NewHandler(authSvc, authMiddleware)
	healthH := healthHandler.NewHandler(db)

	r := router.NewRouter(
		authMiddleware,
		authH,
		profileH,
		patientH,
		studyH,
		contentH,
		portalH,
		healthH,
		router.Config{
			RateLimit:  rate.Limit(cfg.RateLimit.RPS),
			RateBurst:  cfg.RateLimit.Burst,
			CORSConfig: middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
