package routes

import (
	"net/http"
	"time"

	userRepo "roomly/database/repository/user"
	"roomly/handlers"
	"roomly/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the sign-in, verification, and passcode endpoints.
func RegisterAuthRoutes(r *gin.Engine, ah *handlers.AuthHandler, repo userRepo.UserRepository) {
	api := r.Group("/api/auth")
	{
		api.POST("/signin", ah.SignInHandler)
		api.POST("/send-code", ah.SendCodeHandler)
		api.POST("/verify-code", ah.VerifyCodeHandler)
		api.POST("/passcode", ah.SetPasscodeHandler)
		api.POST("/passcode/verify", ah.VerifyPasscodeHandler)
		api.POST("/biometric/begin", ah.BeginBiometricHandler)
		api.POST("/biometric/finish", ah.FinishBiometricHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthUserMiddleware(repo))
		api.DELETE("/logout", ah.LogoutHandler)
	}
}

// RegisterProfileRoutes registers the profile-builder step endpoints.
func RegisterProfileRoutes(r *gin.Engine, ph *handlers.ProfileHandler, repo userRepo.UserRepository) {
	api := r.Group("/api/profile")
	{
		api.Use(middleware.JWTAuthUserMiddleware(repo))
		api.POST("/basic-details", ph.BasicDetailsHandler)
		api.POST("/lifestyle-quiz", ph.LifestyleQuizHandler)
		api.POST("/photo", ph.UploadPhotoHandler)
		api.GET("", ph.GetProfileHandler)
	}
}

// RegisterWizardRoutes registers the central step-gate endpoint.
func RegisterWizardRoutes(r *gin.Engine, wh *handlers.WizardHandler) {
	api := r.Group("/api/wizard")
	{
		api.GET("/state", wh.StateHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Roomly"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ah *handlers.AuthHandler, ph *handlers.ProfileHandler, wh *handlers.WizardHandler, repo userRepo.UserRepository) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, ah, repo)
	RegisterProfileRoutes(r, ph, repo)
	RegisterWizardRoutes(r, wh)
	RegisterHealthRoute(r)
}
