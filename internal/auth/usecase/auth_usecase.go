package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	authdomain "altweb/internal/auth/domain"
	authdto "altweb/internal/auth/dto"
	"altweb/internal/auth/repository"
	"altweb/pkg/config"
	"altweb/pkg/googleauth"
	"altweb/pkg/jwt"
)

// authUsecase implements AuthUsecase.
type authUsecase struct {
	userRepo repository.UserRepository
	avatars  AvatarStore
	verifier googleauth.Verifier
	config   *config.Config
	log      *zap.Logger
}

// NewAuthUsecase wires the authentication service. The Google verifier is
// injected so the sign-in flow can be exercised with a fake.
func NewAuthUsecase(userRepo repository.UserRepository, avatars AvatarStore, verifier googleauth.Verifier, cfg *config.Config, log *zap.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		avatars:  avatars,
		verifier: verifier,
		config:   cfg,
		log:      log,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	email := authdomain.NormalizeEmail(req.Email)

	if verr := validateCredentials(email, req.Password); verr != nil {
		return nil, verr
	}

	// Best-effort pre-check; the unique index resolves races on insert.
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		verr := authdomain.NewValidationError()
		verr.Add("email", msgAlreadyRegistered)
		return nil, verr
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = authdomain.LocalPart(email)
	}

	avatarPath := authdomain.DefaultAvatarPath
	if req.Avatar != nil {
		avatarPath, err = u.avatars.SaveUpload(req.Avatar)
		if err != nil {
			return nil, fmt.Errorf("store avatar: %w", err)
		}
	}

	hash, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &authdomain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         authdomain.RoleUser,
		AvatarPath:   avatarPath,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			verr := authdomain.NewValidationError()
			verr.Add("email", msgAlreadyRegistered)
			return nil, verr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	u.log.Info("user registered", zap.String("user_id", user.ID.Hex()))

	return u.tokenResponse(user)
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, authdomain.NormalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Unknown email and wrong password answer identically.
	if user == nil {
		return nil, authdomain.ErrInvalidCredentials
	}
	if !repository.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, authdomain.ErrInvalidCredentials
	}

	return u.tokenResponse(user)
}

func (u *authUsecase) GoogleSignIn(ctx context.Context, credential string) (*authdto.TokenResponse, error) {
	payload, err := u.verifier.Verify(ctx, credential)
	if err != nil || payload == nil {
		return nil, &authdomain.ExternalAuthError{Message: "Google login error!", Cause: err}
	}

	if payload.Email == "" {
		return nil, authdomain.NewValidationMessage("Not enough user data")
	}
	email := authdomain.NormalizeEmail(payload.Email)

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		if payload.Picture == "" {
			return nil, authdomain.NewValidationMessage("Not enough user data")
		}

		avatarPath, err := u.avatars.FetchRemote(ctx, payload.Picture)
		if err != nil {
			return nil, fmt.Errorf("fetch google avatar: %w", err)
		}

		// The placeholder password is random and unguessable; it is never
		// meant to be used for password login on this account.
		hash, err := repository.HashPassword(uuid.NewString())
		if err != nil {
			return nil, fmt.Errorf("hash placeholder password: %w", err)
		}

		user = &authdomain.User{
			Email:        email,
			PasswordHash: hash,
			DisplayName:  payload.Name,
			Role:         authdomain.RoleUser,
			AvatarPath:   avatarPath,
			GoogleID:     payload.Subject,
		}

		if err := u.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}

		u.log.Info("user provisioned from google",
			zap.String("user_id", user.ID.Hex()),
			zap.String("avatar", avatarPath))
	} else {
		// Re-save on every login, matching the original behavior. No field
		// changes today, so this is a no-op update.
		if err := u.userRepo.Save(ctx, user); err != nil {
			return nil, fmt.Errorf("save user: %w", err)
		}
	}

	return u.tokenResponse(user)
}

func (u *authUsecase) ValidateToken(ctx context.Context, token string) (*authdomain.User, error) {
	claims, err := jwt.Verify(token, []byte(u.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, jwt.ErrTokenInvalid
	}
	return user, nil
}

func (u *authUsecase) tokenResponse(user *authdomain.User) (*authdto.TokenResponse, error) {
	token, err := jwt.Issue(user.ID.Hex(), user.Email, user.Role, []byte(u.config.JWTSecret), u.config.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &authdto.TokenResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}
