package services

import (
	"context"

	"github.com/kerem/schoolhub/internal/app/models"
	"github.com/kerem/schoolhub/internal/app/models/dto"
	"github.com/kerem/schoolhub/internal/pkg/apperrors"
	"github.com/kerem/schoolhub/internal/pkg/auth"
	"github.com/kerem/schoolhub/internal/pkg/logger"
)

// AdminStore looks up administrator accounts
type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
}

// AuthService handles administrator authentication
type AuthService struct {
	admins AdminStore
	jwt    *auth.JWTService
}

// NewAuthService creates a new authentication service
func NewAuthService(admins AdminStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		admins: admins,
		jwt:    jwt,
	}
}

// Login verifies credentials and issues a signed token. A wrong username and
// a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.admins.GetByUsername(ctx, req.Username)
	if err != nil {
		logger.Debug().Str("username", req.Username).Msg("Login failed: unknown username")
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		logger.Debug().Str("username", req.Username).Msg("Login failed: wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(admin)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:     token,
		Role:      string(admin.Role),
		ExpiresIn: expiresIn,
	}, nil
}
