package usecase

import (
	"context"
	"mime/multipart"

	authdomain "altweb/internal/auth/domain"
	authdto "altweb/internal/auth/dto"
)

// AuthUsecase is the authentication service: registration, password login,
// Google sign-in, and token validation for protected routes.
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	GoogleSignIn(ctx context.Context, credential string) (*authdto.TokenResponse, error)
	ValidateToken(ctx context.Context, token string) (*authdomain.User, error)
}

// AvatarStore persists avatar images and reports their relative paths.
type AvatarStore interface {
	SaveUpload(fh *multipart.FileHeader) (string, error)
	FetchRemote(ctx context.Context, url string) (string, error)
}
