package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/unigrade/backend/internal/app/models/dto"
	"github.com/unigrade/backend/internal/app/repositories/memstore"
	"github.com/unigrade/backend/internal/app/services"
	"github.com/unigrade/backend/internal/pkg/apperrors"
	"github.com/unigrade/backend/internal/pkg/auth"
)

type AuthServiceSuite struct {
	suite.Suite

	store *memstore.Store
	svc   *services.AuthService
}

func (s *AuthServiceSuite) SetupTest() {
	s.store = memstore.New()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "test",
	})
	s.svc = services.NewAuthService(s.store.Users(), jwtService)
}

func (s *AuthServiceSuite) register(email string) *dto.AuthResponse {
	resp, err := s.svc.Register(context.Background(), &dto.RegisterRequest{
		Email:           email,
		Password:        "password123",
		PasswordConfirm: "password123",
		DisplayName:     "Test User",
	})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceSuite) TestRegisterIssuesToken() {
	resp := s.register("alice@example.com")
	s.Equal("alice@example.com", resp.User.Email)
	s.NotEmpty(resp.Token)
	s.Equal(3600, resp.ExpiresIn)
}

func (s *AuthServiceSuite) TestRegisterDuplicateEmail() {
	s.register("alice@example.com")

	_, err := s.svc.Register(context.Background(), &dto.RegisterRequest{
		Email:           "Alice@Example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
		DisplayName:     "Other",
	})
	s.Require().ErrorIs(err, apperrors.ErrEmailAlreadyExists)
}

func (s *AuthServiceSuite) TestLogin() {
	s.register("alice@example.com")

	resp, err := s.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	s.register("alice@example.com")

	_, err := s.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestLoginUnknownEmailLooksLikeBadPassword() {
	_, err := s.svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	s.Require().ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}
