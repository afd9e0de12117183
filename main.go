// File: roomly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomly/config"
	"roomly/database"
	userRepoPkg "roomly/database/repository/user"
	"roomly/handlers"
	"roomly/middleware"
	"roomly/routes"
	"roomly/services/auth"
	"roomly/services/mail"
	"roomly/services/profile"
	"roomly/services/wizard"
	"roomly/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-webauthn/webauthn/webauthn"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	webAuthn, err := webauthn.New(&webauthn.Config{
		RPDisplayName: config.AppConfig.RPName,
		RPID:          config.AppConfig.RPID,
		RPOrigins:     []string{config.AppConfig.RPOrigin},
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize webauthn: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories and stores.
	userRepo := userRepoPkg.NewMongoUserRepo()
	codeStore := auth.NewRedisCodeStore(utils.GetCodeCacheClient())
	ceremonyStore := auth.NewRedisCeremonyStore(utils.GetCodeCacheClient())

	// services.
	authService := &auth.DefaultAuthService{
		Repo:      userRepo,
		Codes:     codeStore,
		Ceremony:  ceremonyStore,
		Mailer:    mail.NewSenderFromConfig(),
		WebAuthn:  webAuthn,
		AuthCache: utils.GetAuthCacheClient(),
	}
	profileService := &profile.DefaultProfileService{
		Repo:          userRepo,
		Storage:       cloudinaryStorageService,
		PhotoRequired: config.AppConfig.PhotoRequired,
	}
	wizardController := &wizard.Controller{
		Auth:    authService,
		Profile: profileService,
	}

	authHandler := handlers.NewAuthHandler(authService, wizardController)
	profileHandler := handlers.NewProfileHandler(profileService, wizardController)
	wizardHandler := handlers.NewWizardHandler(wizardController)

	routes.RegisterRoutes(router, authHandler, profileHandler, wizardHandler, userRepo)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Roomly listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
