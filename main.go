package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	api "altweb/cmd/api"
	authRepo "altweb/internal/auth/repository"
	authUsecase "altweb/internal/auth/usecase"
	"altweb/pkg/config"
	"altweb/pkg/database"
	"altweb/pkg/googleauth"
	"altweb/pkg/logging"
	"altweb/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger, err := logging.New(os.Getenv("DEBUG") != "")
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.NewMongoDatabase(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Client().Disconnect(ctx)

	if err := authRepo.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("failed to create indexes", zap.Error(err))
	}

	imageStore, err := storage.NewImageStore(cfg.PublicDir)
	if err != nil {
		logger.Fatal("failed to prepare public directory", zap.Error(err))
	}

	verifier := googleauth.NewVerifier(cfg.GoogleClientID)

	var oauthFlow *googleauth.OAuthFlow
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		oauthFlow = googleauth.NewOAuthFlow(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)
	}

	userRepo := authRepo.NewUserRepository(db)
	authUc := authUsecase.NewAuthUsecase(userRepo, imageStore, verifier, cfg, logger)

	handler := api.NewHandler(authUc, oauthFlow, cfg, imageStore.PublicDir(), logger)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
