package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentity"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/rs/zerolog/log"

	"github.com/cloudpeak/authgate/internal/config"
	"github.com/cloudpeak/authgate/internal/handlers"
	"github.com/cloudpeak/authgate/internal/logger"
	"github.com/cloudpeak/authgate/internal/repository/dynamo"
	"github.com/cloudpeak/authgate/internal/router"
	"github.com/cloudpeak/authgate/internal/server"
	"github.com/cloudpeak/authgate/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg)

	var awsOpts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		awsOpts = append(awsOpts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load AWS configuration")
	}

	userRepo := dynamo.NewDynamoUserRepository(dynamodb.NewFromConfig(awsCfg), cfg.Auth.UserTable)
	emailSvc := service.NewSESEmailService(ses.NewFromConfig(awsCfg), &cfg.Mail)
	identitySvc := service.NewCognitoIdentityService(cognitoidentity.NewFromConfig(awsCfg), &cfg.Auth)

	app := server.New()
	router.SetupAuthRoutes(app, handlers.NewAuthHandler(
		service.NewAuthService(userRepo, emailSvc, identitySvc, cfg),
	))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Info().Str("port", cfg.Port).Str("region", awsCfg.Region).Msg("Server starting")
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	if err := app.Shutdown(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped gracefully")
}
