package dto

import (
	"mime/multipart"

	authdomain "altweb/internal/auth/domain"
)

type RegisterRequest struct {
	Email       string                `form:"email"`
	Password    string                `form:"password"`
	DisplayName string                `form:"displayName"`
	Avatar      *multipart.FileHeader `form:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type GoogleSignInRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// TokenResponse is the success body for every authentication endpoint.
type TokenResponse struct {
	Token string                `json:"token"`
	User  authdomain.PublicUser `json:"user"`
}
