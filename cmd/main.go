package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"project_karcis/internal/config"
	"project_karcis/internal/infrastructure"
	"project_karcis/internal/interfaces/http"
	"project_karcis/internal/repository"
	"project_karcis/internal/usecases"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load .env file if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	cfg, err := config.Load(os.Getenv)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	// Connect to PostgreSQL and run startup migrations
	pgClient, err := infrastructure.NewPostgresClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	// Initialize Repositories
	userRepo := repository.NewUserRepository(pgClient.Pool)
	tokenRepo := repository.NewTokenRepository(pgClient.Pool)
	otpRepo := repository.NewOTPRepository(pgClient.Pool)
	balanceRepo := repository.NewBalanceRepository(pgClient.Pool)
	amenityRepo := repository.NewAmenityRepository(pgClient.Pool)

	// Initialize Usecases & Services
	mailer := infrastructure.NewSMTPMailer(cfg)
	signer := usecases.NewTokenSigner(cfg.JWTSecret, cfg.JWTTTL)
	authUsecase := usecases.NewAuthUsecase(userRepo, tokenRepo, otpRepo, mailer, signer, cfg.OTPTTL)

	authMiddleware := http.NewMiddleware(signer, userRepo, tokenRepo, log)
	handler := http.NewHandler(authUsecase, userRepo, balanceRepo, amenityRepo, log)

	// Setup HTTP server
	r := gin.New()
	r.Use(gin.Recovery())
	http.SetupRoutes(r, handler, authMiddleware, log)

	log.Info().Str("addr", cfg.HTTPAddress()).Msg("starting HTTP server")
	if err := r.Run(cfg.HTTPAddress()); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}
