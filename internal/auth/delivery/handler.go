package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authdomain "altweb/internal/auth/domain"
	authdto "altweb/internal/auth/dto"
	"altweb/internal/auth/usecase"
	"altweb/pkg/googleauth"
)

const oauthStateCookie = "oauth_state"

// AuthHandler exposes the authentication endpoints.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	oauthFlow   *googleauth.OAuthFlow
	log         *zap.Logger
}

// NewAuthHandler creates the handler. oauthFlow may be nil when the
// server-side code flow is not configured; the redirect endpoints then
// respond with 404.
func NewAuthHandler(authUsecase usecase.AuthUsecase, oauthFlow *googleauth.OAuthFlow, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		oauthFlow:   oauthFlow,
		log:         log,
	}
}

// Register handles POST /user: multipart form with email, password,
// optional displayName and avatar file.
func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	req := &authdto.RegisterRequest{
		Email:       email,
		Password:    password,
		DisplayName: c.PostForm("displayName"),
	}
	if avatar, err := c.FormFile("avatar"); err == nil {
		req.Avatar = avatar
	}

	resp, err := h.authUsecase.Register(c.Request.Context(), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Login handles POST /user/auth: JSON email/password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GoogleSignIn handles POST /user/google: JSON with the One Tap credential.
func (h *AuthHandler) GoogleSignIn(c *gin.Context) {
	var req authdto.GoogleSignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Credential is required"})
		return
	}

	resp, err := h.authUsecase.GoogleSignIn(c.Request.Context(), req.Credential)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user's public record.
func (h *AuthHandler) Me(c *gin.Context) {
	value, ok := c.Get(userContextKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	user := value.(*authdomain.User)
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

// GoogleRedirect starts the server-side authorization-code flow.
func (h *AuthHandler) GoogleRedirect(c *gin.Context) {
	if h.oauthFlow == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "google oauth is not configured"})
		return
	}

	state, err := googleauth.NewState()
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, h.oauthFlow.AuthURL(state))
}

// GoogleCallback finishes the code flow: it checks the CSRF state, exchanges
// the code for an ID token, and runs the regular Google sign-in.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.oauthFlow == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "google oauth is not configured"})
		return
	}

	state := c.Query("state")
	cookieState, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != cookieState {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
		return
	}

	idToken, err := h.oauthFlow.ExchangeIDToken(c.Request.Context(), code)
	if err != nil {
		h.renderError(c, &authdomain.ExternalAuthError{Message: "Google login error!", Cause: err})
		return
	}

	resp, err := h.authUsecase.GoogleSignIn(c.Request.Context(), idToken)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// renderError maps the error taxonomy to HTTP responses. Validation errors
// carry a field map when attributable to fields; credential and provider
// errors carry a single message. Everything else is an infrastructure
// failure: logged, answered with a generic 500 body.
func (h *AuthHandler) renderError(c *gin.Context, err error) {
	var verr *authdomain.ValidationError
	if errors.As(err, &verr) {
		if len(verr.Fields) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Fields})
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		}
		return
	}

	var ae *authdomain.AuthError
	if errors.As(err, &ae) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ae.Message})
		return
	}

	var ee *authdomain.ExternalAuthError
	if errors.As(err, &ee) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ee.Message})
		return
	}

	h.log.Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
