package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"altweb/internal/auth/delivery"
	authUsecase "altweb/internal/auth/usecase"
)

// SetupRoutes registers the authentication endpoints and the health check.
func SetupRoutes(r *gin.Engine, authHandler *delivery.AuthHandler, uc authUsecase.AuthUsecase) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	user := r.Group("/user")
	{
		user.POST("", authHandler.Register)
		user.POST("/auth", authHandler.Login)
		user.POST("/google", authHandler.GoogleSignIn)
		user.GET("/google/redirect", authHandler.GoogleRedirect)
		user.GET("/google/callback", authHandler.GoogleCallback)
		user.GET("/me", delivery.AuthMiddleware(uc), authHandler.Me)
	}
}
