package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/unigrade/backend/internal/app/models"
	"github.com/unigrade/backend/internal/app/models/dto"
	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/auth"
	"github.com/unigrade/backend/internal/pkg/logger"
)

// AuthService handles account registration and login.
type AuthService struct {
	users UserStore
	jwt   *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(users UserStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
	}
}

// Register creates a new account and returns it with an access token.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    hashed,
		DisplayName: strings.TrimSpace(req.DisplayName),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("email", user.Email).Msg("User registered")

	return s.authResponse(user)
}

// Login verifies credentials and returns the account with an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// GetUser retrieves an account by id.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		User: dto.UserResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
		},
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}
