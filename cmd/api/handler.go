package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"altweb/internal/auth/delivery"
	authUsecase "altweb/internal/auth/usecase"
	"altweb/pkg/config"
	"altweb/pkg/googleauth"
)

// Handler owns the HTTP server wiring: middleware, static files, routes.
type Handler struct {
	authUsecase authUsecase.AuthUsecase
	oauthFlow   *googleauth.OAuthFlow
	config      *config.Config
	publicDir   string
	log         *zap.Logger
}

func NewHandler(authUc authUsecase.AuthUsecase, oauthFlow *googleauth.OAuthFlow, cfg *config.Config, publicDir string, log *zap.Logger) *Handler {
	return &Handler{
		authUsecase: authUc,
		oauthFlow:   oauthFlow,
		config:      cfg,
		publicDir:   publicDir,
		log:         log,
	}
}

// Start builds the gin engine and blocks serving on addr.
func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(h.corsMiddleware())

	// Stored avatars are served straight from the public directory.
	r.Static("/images", h.publicDir+"/images")

	authHandler := delivery.NewAuthHandler(h.authUsecase, h.oauthFlow, h.log)
	SetupRoutes(r, authHandler, h.authUsecase)

	return r.Run(addr)
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := h.config.AllowedOrigin
		if origin == "*" {
			if reqOrigin := c.Request.Header.Get("Origin"); reqOrigin != "" {
				origin = reqOrigin
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
